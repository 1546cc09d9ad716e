package cli

import (
	"fmt"

	"atsbuddy/internal/errors"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session state and backend reachability",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if _, err := rt.client.Health(cmd.Context()); err != nil {
		fmt.Fprintf(out, "Backend:  unreachable (%s)\n", rt.cfg.API.BaseURL)
	} else {
		fmt.Fprintf(out, "Backend:  ok (%s)\n", rt.cfg.API.BaseURL)
	}

	state := rt.session.Hydrate()
	fmt.Fprintf(out, "Session:  %s\n", state)

	if !rt.session.IsAuthenticated() {
		return nil
	}

	// An expired token during this background fetch reads as "no profile
	// available": the client has already dropped the session, the command
	// just reports the resulting state instead of failing.
	me, err := rt.client.Me(cmd.Context())
	if err != nil {
		if errors.IsSessionExpired(err) {
			fmt.Fprintf(out, "Profile:  unavailable, session expired\n")
			fmt.Fprintf(out, "Session:  %s\n", rt.session.State())
			return nil
		}
		rt.logger.LogError(err, "Profile fetch failed")
		fmt.Fprintln(out, "Profile:  unavailable")
		return nil
	}

	fmt.Fprintf(out, "Account:  %s <%s>\n", me.FullName, me.Email)
	return nil
}
