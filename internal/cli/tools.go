package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"atsbuddy/internal/common"
	"atsbuddy/internal/forms"

	"github.com/spf13/cobra"
)

// resolveResumeText produces the resume text for a tool command. With a
// plain text file it is read directly; with --from-file the document is
// uploaded for extraction and the extracted text fills the field instead.
// Extraction failure leaves nothing half-filled: the command just fails.
func resolveResumeText(cmd *cobra.Command, rt *runtime, fromFile, textFile string) (string, error) {
	if fromFile == "" {
		contents, err := common.ReadCommandInputs(rt.logger, textFile)
		if err != nil {
			return "", err
		}
		return contents[0], nil
	}

	file, err := os.Open(fromFile)
	if err != nil {
		return "", fmt.Errorf("cannot open %s: %w", fromFile, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			rt.logger.Warn("Failed to close file", "filename", fromFile, "error", cerr)
		}
	}()

	uploader := forms.NewUploader(rt.client.ExtractText, rt.logger)
	extracted, err := uploader.Run(cmd.Context(), filepath.Base(fromFile), file)
	if err != nil {
		return "", err
	}

	rt.logger.Info("Resume text filled from extraction",
		"file", extracted.FileName, "characters", extracted.CharacterCount)
	return extracted.ExtractedText, nil
}

// applyDefaultFormat fills and validates the output format the way every
// tool command does it.
func applyDefaultFormat(cmd *cobra.Command, cmdConfig *common.CommandConfig) error {
	cfg := getConfigFromContext(cmd.Context())
	if cmdConfig.OutputFormat == "" {
		cmdConfig.OutputFormat = cfg.App.DefaultFormat
	}
	return common.ValidateOutputFormat(cmdConfig.OutputFormat, cfg.App.SupportedFormats)
}

func formatCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg := getConfigFromContext(cmd.Context())
	return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
}
