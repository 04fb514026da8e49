package config

import "github.com/joho/godotenv"

type Config interface {
	ProxyConfig
	ClientConfig
	CorsConfig
}

// ProxyConfig covers everything the token exchange proxy needs: the
// server-held OAuth application credentials and where to reach GitHub.
type ProxyConfig interface {
	GetPort() string
	GetAppName() string
	GetClientID() string
	GetClientSecret() string
	GetRedirectURI() string
	GetProviderURL() string
	GetProviderAPIURL() string
	GetEnv() string
}

// ClientConfig covers the login client side of the application.
type ClientConfig interface {
	GetBackendURL() string
	GetSessionDir() string
}

// ServerConfig is the subset of Config the proxy server is built from.
type ServerConfig interface {
	ProxyConfig
	CorsConfig
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
}

func New() Config {
	// Optional .env file, matching the dotenv setup of the web build.
	_ = godotenv.Load()
	return mainConfig{}
}
