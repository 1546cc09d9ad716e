package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"atsbuddy/internal/common"
	"atsbuddy/internal/forms"
	"atsbuddy/internal/session"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [document-file]",
	Short: "Extract plain text from a PDF or DOCX resume",
	Long: `Upload a PDF or DOCX document and print the extracted plain text.
Useful for turning an existing resume document into the text input the
other tools take. Unsupported file types are rejected before any upload.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error { return applyDefaultFormat(cmd, &extractConfig) },
	RunE:    runExtract,
}

var extractConfig common.CommandConfig

func init() {
	extractCmd.Flags().StringVarP(&extractConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().StringVar(&extractConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = extractCmd.RegisterFlagCompletionFunc("format", formatCompletion)
}

func runExtract(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime(cmd)
	if err != nil {
		return err
	}
	if err := session.RequireAuthenticated(rt.session); err != nil {
		return err
	}

	filename := args[0]
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", filename, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			rt.logger.Warn("Failed to close file", "filename", filename, "error", cerr)
		}
	}()

	uploader := forms.NewUploader(rt.client.ExtractText, rt.logger)

	rt.logger.Info("Starting text extraction", "file", filename, "output_format", extractConfig.OutputFormat)
	result, err := uploader.Run(cmd.Context(), filepath.Base(filename), file)
	if err != nil {
		return fmt.Errorf("failed to extract text: %w", err)
	}

	if err := common.NewOutputHandler(rt.logger).HandleOutput(result, extractConfig); err != nil {
		return err
	}
	rt.logger.Info("Text extraction completed successfully")
	return nil
}
