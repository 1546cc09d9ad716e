package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// promptLine reads one line from the command's input when a value was not
// supplied by flag. Password input through flags is discouraged in help
// text; interactive entry is the expected path.
func promptLine(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ", label)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func valueOrPrompt(cmd *cobra.Command, value, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	return promptLine(cmd, label)
}
