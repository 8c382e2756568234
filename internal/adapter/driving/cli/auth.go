package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/notty/internal/domain/model"
)

func (a *App) registerCommand() *cobra.Command {
	var user model.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if user.Password == "" {
				pw, err := promptPassword(a.stdin, a.stderr, "Choose password: ")
				if err != nil {
					return err
				}
				user.Password = pw
			}

			created, err := a.svc.API.Register(cmd.Context(), user)
			if err != nil {
				return fmt.Errorf("registering %q: %w", user.Username, err)
			}

			return a.render(created, func(w io.Writer) {
				fmt.Fprintf(w, "Registered user %q (id %d). Run `notty login -u %s` to sign in.\n", created.Username, created.ID, created.Username)
			})
		},
	}

	cmd.Flags().StringVarP(&user.Username, "username", "u", "", "Username")
	cmd.Flags().StringVar(&user.Email, "email", "", "Email address")
	cmd.Flags().StringVarP(&user.Password, "password", "p", "", "Password (prompted for when omitted)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func (a *App) loginCommand() *cobra.Command {
	var creds model.LoginCredentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if creds.Password == "" {
				pw, err := promptPassword(a.stdin, a.stderr, "Password: ")
				if err != nil {
					return err
				}
				creds.Password = pw
			}

			session, err := a.svc.Sessions.Login(cmd.Context(), creds)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			return a.renderSession(session)
		},
	}

	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "Password (prompted for when omitted)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func (a *App) refreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the refresh token for a new access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.svc.Sessions.Refresh(cmd.Context())
			if err != nil {
				return fmt.Errorf("refresh: %w", err)
			}
			return a.renderSession(session)
		},
	}
}

func (a *App) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.svc.Sessions.Status(cmd.Context())
			if err != nil {
				return err
			}
			return a.renderSession(session)
		},
	}
}

// sessionView is the serialized form of model.Session.
type sessionView struct {
	LoggedIn   bool       `json:"logged_in"`
	UserID     string     `json:"user_id,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Expired    bool       `json:"expired"`
	HasRefresh bool       `json:"has_refresh_token"`
}

func (a *App) renderSession(s *model.Session) error {
	view := sessionView{
		LoggedIn:   s.LoggedIn,
		UserID:     s.UserID,
		Expired:    s.Expired,
		HasRefresh: s.HasRefresh,
	}
	if !s.ExpiresAt.IsZero() {
		view.ExpiresAt = &s.ExpiresAt
	}

	return a.render(view, func(w io.Writer) {
		if !s.LoggedIn {
			fmt.Fprintln(w, "Not logged in.")
			return
		}
		user := s.UserID
		if user == "" {
			user = "unknown"
		}
		fmt.Fprintf(w, "User:\t%s\n", user)
		switch {
		case s.ExpiresAt.IsZero():
			fmt.Fprintf(w, "Access token:\tunknown expiry\n")
		case s.Expired:
			fmt.Fprintf(w, "Access token:\texpired at %s\n", s.ExpiresAt.Local().Format(time.RFC1123))
		default:
			fmt.Fprintf(w, "Access token:\tvalid until %s\n", s.ExpiresAt.Local().Format(time.RFC1123))
		}
		fmt.Fprintf(w, "Refresh token:\t%s\n", yesNo(s.HasRefresh))
	})
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
