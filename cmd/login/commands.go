package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/browser"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mbautistas/github-oauth-login/flow"
	"github.com/mbautistas/github-oauth-login/github"
)

const loginTimeout = 5 * time.Minute

func (a *app) loginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate with GitHub through the browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLogin(cmd.Context())
		},
	}
}

// runLogin performs the redirect dance: a short-lived listener on the
// redirect URI captures the provider's return, and the full return URL is
// handed to the flow controller for the one-shot code exchange.
func (a *app) runLogin(ctx context.Context) error {
	redirect, err := url.Parse(a.cfg.GetRedirectURI())
	if err != nil {
		return fmt.Errorf("invalid redirect uri: %w", err)
	}
	callbackPath := redirect.Path
	if callbackPath == "" {
		callbackPath = "/"
	}

	returns := make(chan string, 1)
	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		captured := *redirect
		captured.RawQuery = r.URL.RawQuery
		select {
		case returns <- captured.String():
		default:
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintln(w, "<html><body>Login complete. You can close this tab.</body></html>")
	})

	listener := &http.Server{Addr: redirect.Host, Handler: mux}
	go func() { _ = listener.ListenAndServe() }()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = listener.Shutdown(shutdownCtx)
	}()

	authURL := a.controller.AuthorizationURL()
	pterm.Info.Println("Opening the browser for the GitHub consent page...")
	if err := browser.OpenURL(authURL); err != nil {
		pterm.Warning.Printfln("Could not open a browser, visit this URL manually:\n%s", authURL)
	}

	select {
	case returnURL := <-returns:
		_, event, err := a.controller.HandleReturn(ctx, returnURL)
		if err != nil {
			return err
		}
		notify(event)
		if event.Kind == flow.LoginSucceeded {
			pterm.Info.Println("Run 'github-login profile' to fetch your user data.")
		}
		return nil
	case <-time.After(loginTimeout):
		return errors.New("timed out waiting for the provider redirect")
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *app) profileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show your GitHub profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			event, err := a.controller.ShowProfile(cmd.Context())
			if err != nil {
				return err
			}
			notify(event)
			printProfile(event.Profile)
			return nil
		},
	}
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			event, err := a.controller.Logout()
			if err != nil {
				return err
			}
			notify(event)
			return nil
		},
	}
}

func (a *app) createRepoCommand() *cobra.Command {
	var (
		name        string
		homepage    string
		description string
		private     bool
	)
	cmd := &cobra.Command{
		Use:   "create-repo",
		Short: "Create a new repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, ok := a.sessionToken()
			if !ok {
				return nil
			}

			resp, err := a.provider.CreateRepository(cmd.Context(), token, github.NewRepository{
				Name:        name,
				Homepage:    homepage,
				Description: description,
				Private:     private,
			})
			if err != nil {
				pterm.Error.Println(flow.MsgConnectionError)
				return err
			}

			message := flow.RepoCreationMessage(resp.Status, resp.Body)
			if resp.Status == http.StatusCreated {
				pterm.Success.Println(message)
			} else {
				pterm.Error.Println(message)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "repository name")
	cmd.Flags().StringVar(&homepage, "url", "", "homepage URL")
	cmd.Flags().StringVar(&description, "description", "", "repository description")
	cmd.Flags().BoolVar(&private, "private", false, "create a private repository")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *app) uploadCommand() *cobra.Command {
	var (
		repo        string
		dir         string
		commitTitle string
	)
	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload one or more files to a repository",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, ok := a.sessionToken()
			if !ok {
				return nil
			}
			owner, err := a.sessionOwner(cmd.Context())
			if err != nil {
				return err
			}

			files := make([]github.FileUpload, 0, len(args))
			for _, path := range args {
				content, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				files = append(files, github.FileUpload{Name: filepath.Base(path), Content: content})
			}

			summary, err := a.provider.UploadFiles(cmd.Context(), token, owner, repo, dir, commitTitle, files)
			if err != nil {
				pterm.Error.Println(flow.MsgConnectionError)
				return err
			}
			for i, message := range summary.Messages() {
				// The first summary line reports the successes.
				if i == 0 && summary.Created+summary.Updated > 0 {
					pterm.Success.Println(message)
					continue
				}
				pterm.Error.Println(message)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&repo, "repo", "", "repository name")
	cmd.Flags().StringVar(&dir, "dir", "", "directory to place the files under")
	cmd.Flags().StringVar(&commitTitle, "message", "", "commit title")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

// sessionToken loads the stored access token; a missing token surfaces the
// session-expired message instead of an error, matching the web build.
func (a *app) sessionToken() (string, bool) {
	record, err := a.store.Load()
	if err != nil || !record.Authenticated() {
		pterm.Warning.Println(flow.MsgSessionExpired)
		return "", false
	}
	return record.AccessToken, true
}

// sessionOwner returns the stored profile's login, fetching the profile
// first when it has not been cached yet.
func (a *app) sessionOwner(ctx context.Context) (string, error) {
	record, err := a.store.Load()
	if err != nil {
		return "", err
	}
	if record.Profile != nil {
		return record.Profile.Login, nil
	}
	event, err := a.controller.ShowProfile(ctx)
	if err != nil {
		return "", err
	}
	if event.Profile == nil {
		notify(event)
		return "", errors.New("could not determine the repository owner")
	}
	return event.Profile.Login, nil
}
