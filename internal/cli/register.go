package cli

import (
	"fmt"

	"atsbuddy/internal/session"
	"atsbuddy/internal/types"
	"atsbuddy/internal/validate"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	Long: `Create a new ATS Buddy account. On success the same credentials are
used to log in immediately, so a single command leaves you with a working
session.`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

var registerOpts struct {
	FullName string
	Email    string
	Password string
}

func init() {
	registerCmd.Flags().StringVarP(&registerOpts.FullName, "name", "n", "", "Full name (prompted when omitted)")
	registerCmd.Flags().StringVarP(&registerOpts.Email, "email", "e", "", "Account email (prompted when omitted)")
	registerCmd.Flags().StringVarP(&registerOpts.Password, "password", "p", "", "Account password (prompted when omitted; prefer the prompt)")
}

func runRegister(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime(cmd)
	if err != nil {
		return err
	}
	if err := session.RequirePublic(rt.session); err != nil {
		return err
	}

	fullName, err := valueOrPrompt(cmd, registerOpts.FullName, "Full name")
	if err != nil {
		return err
	}
	email, err := valueOrPrompt(cmd, registerOpts.Email, "Email")
	if err != nil {
		return err
	}
	password, err := valueOrPrompt(cmd, registerOpts.Password, "Password")
	if err != nil {
		return err
	}

	req := types.RegisterRequest{FullName: fullName, Email: email, Password: password}
	if errs := validate.RegisterRequest(req); len(errs) > 0 {
		return errs
	}

	user, err := rt.client.Register(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	rt.logger.Info("Account created", "user_id", user.UserID, "email", user.Email)

	// Strict sequence: the login call is only issued once registration has
	// succeeded.
	resp, err := rt.client.Login(cmd.Context(), types.LoginRequest{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("account created but login failed, run 'atsbuddy login': %w", err)
	}
	if err := rt.session.Login(resp.AccessToken); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Welcome %s, you are logged in as %s\n", user.FullName, user.Email)
	return nil
}
