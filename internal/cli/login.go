package cli

import (
	"fmt"

	"atsbuddy/internal/session"
	"atsbuddy/internal/types"
	"atsbuddy/internal/validate"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	Long: `Log in to the ATS Buddy backend with an email/password account.
The returned session token is stored in the credentials file and used by
all protected commands until you log out or the server rejects it.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var loginOpts struct {
	Email    string
	Password string
}

func init() {
	loginCmd.Flags().StringVarP(&loginOpts.Email, "email", "e", "", "Account email (prompted when omitted)")
	loginCmd.Flags().StringVarP(&loginOpts.Password, "password", "p", "", "Account password (prompted when omitted; prefer the prompt)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime(cmd)
	if err != nil {
		return err
	}
	if err := session.RequirePublic(rt.session); err != nil {
		return err
	}

	email, err := valueOrPrompt(cmd, loginOpts.Email, "Email")
	if err != nil {
		return err
	}
	password, err := valueOrPrompt(cmd, loginOpts.Password, "Password")
	if err != nil {
		return err
	}

	req := types.LoginRequest{Email: email, Password: password}
	if errs := validate.LoginRequest(req); len(errs) > 0 {
		return errs
	}

	resp, err := rt.client.Login(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	// Token is persisted before the state flips, so anything reacting to
	// the authenticated state can read it immediately.
	if err := rt.session.Login(resp.AccessToken); err != nil {
		return err
	}

	rt.logger.Info("Login completed", "email", email)
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", email)
	return nil
}
