package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) registerCommand() *cobra.Command {
	var email, name, phone string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, err := a.valueOrPrompt(email, "Email")
			if err != nil {
				return err
			}
			password, err := a.readPassword("Password")
			if err != nil {
				return err
			}

			id, err := a.client().Register(cmd.Context(), email, password, name, phone)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Registered %s (id %s). Run 'worklog login' to sign in.\n", email, id)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&phone, "phone", "p", "", "phone number")
	return cmd
}

func (a *App) loginCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, err := a.valueOrPrompt(email, "Email")
			if err != nil {
				return err
			}
			password, err := a.readPassword("Password")
			if err != nil {
				return err
			}
			return a.client().Login(cmd.Context(), email, password)
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func (a *App) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the session and forget it locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.deps.Session.Current().SignedIn() {
				fmt.Fprintln(a.out, "Not signed in")
				return nil
			}
			return a.client().Logout(cmd.Context())
		},
	}
}

func (a *App) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := a.client().Profile(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, styleHeading.Render(u.Email))
			if u.Name != "" {
				fmt.Fprintf(a.out, "name:   %s\n", u.Name)
			}
			if u.Phone != "" {
				fmt.Fprintf(a.out, "phone:  %s\n", u.Phone)
			}
			fmt.Fprintf(a.out, "member: %s\n", u.CreatedAt.Format("02 Jan 2006"))
			return nil
		},
	}
}
