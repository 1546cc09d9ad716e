package cli

import (
	"fmt"

	"atsbuddy/internal/session"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and destroy the stored session token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime(cmd)
	if err != nil {
		return err
	}

	if rt.session.Hydrate() != session.StateAuthenticated {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
		return nil
	}

	if err := rt.session.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
	return nil
}
