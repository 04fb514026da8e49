package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	portEnvVar       = "PORT"
	appNameVar       = "APP_NAME"
	clientIDVar      = "CLIENT_ID"
	clientSecretVar  = "CLIENT_SECRET"
	redirectURIVar   = "REDIRECT_URI"
	providerURLVar   = "PROVIDER_URL"
	providerAPIVar   = "PROVIDER_API_URL"
	backendURLVar    = "BACKEND_URL"
	sessionFolderVar = "SESSION_FOLDER"
)

type EnvVars struct{}

var _ ProxyConfig = EnvVars{}
var _ ClientConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "4000")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Github Login")
}

func (EnvVars) GetClientID() string {
	return GetEnv(clientIDVar, "")
}

func (EnvVars) GetClientSecret() string {
	return GetEnv(clientSecretVar, "")
}

func (EnvVars) GetRedirectURI() string {
	return GetEnv(redirectURIVar, "http://localhost:3000/callback")
}

// GetProviderURL returns the base URL of the OAuth endpoints. Overridable so
// tests can point the proxy at a stub provider.
func (EnvVars) GetProviderURL() string {
	return GetEnv(providerURLVar, "https://github.com")
}

func (EnvVars) GetProviderAPIURL() string {
	return GetEnv(providerAPIVar, "https://api.github.com")
}

func (EnvVars) GetBackendURL() string {
	return GetEnv(backendURLVar, "http://localhost:4000")
}

// GetSessionDir returns the folder holding the persisted session, the local
// equivalent of the browser build's localStorage.
func (EnvVars) GetSessionDir() string {
	if folder := GetEnv(sessionFolderVar, ""); folder != "" {
		return folder
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".github-login"
	}
	return filepath.Join(home, ".github-login")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
