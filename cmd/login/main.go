// Command login is the terminal front end of the application: it drives the
// OAuth redirect dance through the system browser, exchanges the returned
// code via the token proxy, and exposes the authenticated operations.
package main

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mbautistas/github-oauth-login/flow"
	"github.com/mbautistas/github-oauth-login/github"
	"github.com/mbautistas/github-oauth-login/internal/config"
	"github.com/mbautistas/github-oauth-login/session"
)

// app bundles the pieces every subcommand needs.
type app struct {
	cfg        config.Config
	store      session.Store
	controller *flow.Controller
	provider   *github.Client
}

func newApp() *app {
	cfg := config.New()
	store := session.NewFileStore(cfg.GetSessionDir())
	backend := flow.NewProxyClient(cfg.GetBackendURL())
	return &app{
		cfg:        cfg,
		store:      store,
		controller: flow.New(backend, store, cfg.GetClientID(), cfg.GetRedirectURI()),
		provider:   github.NewClient(github.WithAPIBaseURL(cfg.GetProviderAPIURL())),
	}
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)

	a := newApp()

	root := &cobra.Command{
		Use:           "github-login",
		Short:         "Log in with GitHub and work with your repositories",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		a.loginCommand(),
		a.profileCommand(),
		a.logoutCommand(),
		a.createRepoCommand(),
		a.uploadCommand(),
	)

	if err := root.Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// notify renders a controller event the way the web build showed toasts.
func notify(event flow.Event) {
	if event.None() {
		return
	}
	switch event.Kind {
	case flow.LoginSucceeded:
		pterm.Success.Println(event.Message)
	case flow.LoginFailed, flow.LogoutFailed, flow.ProfileFailed:
		pterm.Error.Println(event.Message)
	case flow.SessionCleared:
		if event.Message != "" {
			pterm.Warning.Println(event.Message)
		} else {
			pterm.Info.Println("Logged out.")
		}
	case flow.ProfileReady:
		if event.Message != "" {
			pterm.Info.Println(event.Message)
		}
	}
}

func printProfile(user *github.User) {
	if user == nil {
		return
	}
	pterm.DefaultSection.Println(user.Name)
	pterm.Printfln("@%s", user.Login)
	pterm.Printfln("Publics repos: %d", user.PublicRepos)
	pterm.Printfln("Privates repos: %d", user.TotalPrivateRepos)
	pterm.Printfln("Profile: %s", user.HTMLURL)
}
