package cli

import (
	"fmt"

	"atsbuddy/internal/googleauth"
	"atsbuddy/internal/session"
	"atsbuddy/internal/types"

	"github.com/spf13/cobra"
)

var googleCmd = &cobra.Command{
	Use:   "google",
	Short: "Log in with a Google account",
	Long: `Log in through Google. A consent URL is printed for your browser; the
identity token from the loopback redirect is exchanged with the backend for
a session token. Requires a configured Google client ID; without one this
command reports the sign-in path as disabled.`,
	Args: cobra.NoArgs,
	RunE: runGoogle,
}

func runGoogle(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime(cmd)
	if err != nil {
		return err
	}
	if err := session.RequirePublic(rt.session); err != nil {
		return err
	}

	flow, err := googleauth.NewFlow(cmd.Context(),
		rt.cfg.Auth.GoogleClientID, rt.cfg.Auth.GoogleClientSecret, rt.logger)
	if err != nil {
		return err
	}

	idToken, err := flow.Obtain(cmd.Context())
	if err != nil {
		return err
	}

	resp, err := rt.client.GoogleAuth(cmd.Context(), types.GoogleAuthRequest{IDToken: idToken})
	if err != nil {
		return fmt.Errorf("Google sign-in failed: %w", err)
	}
	if err := rt.session.Login(resp.AccessToken); err != nil {
		return err
	}

	rt.logger.Info("Google sign-in completed", "email", resp.Email)
	if resp.Email != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", resp.Email)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Logged in with Google")
	}
	return nil
}
