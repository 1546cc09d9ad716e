package cli

import (
	"context"
	"fmt"

	"atsbuddy/internal/common"
	"atsbuddy/internal/forms"
	"atsbuddy/internal/session"
	"atsbuddy/internal/types"
	"atsbuddy/internal/validate"

	"github.com/spf13/cobra"
)

var keywordGapCmd = &cobra.Command{
	Use:   "keyword-gap [resume-file] [job-description-file]",
	Short: "Find job description keywords missing from a resume",
	Long: `Compare a resume against a job description and report missing
keywords, the high-priority ones to add first, and overall coverage. With
--from-file the resume text is extracted from a PDF or DOCX document
instead, and only the job description file is passed as an argument.`,
	Args:    cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error { return applyDefaultFormat(cmd, &keywordGapConfig) },
	RunE:    runKeywordGap,
}

var keywordGapConfig common.CommandConfig

var keywordGapOpts struct {
	FromFile string
}

func init() {
	keywordGapCmd.Flags().StringVarP(&keywordGapConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	keywordGapCmd.Flags().StringVar(&keywordGapConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	keywordGapCmd.Flags().StringVar(&keywordGapOpts.FromFile, "from-file", "", "Fill the resume text from a PDF or DOCX document")

	_ = keywordGapCmd.RegisterFlagCompletionFunc("format", formatCompletion)
}

func runKeywordGap(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime(cmd)
	if err != nil {
		return err
	}
	if err := session.RequireAuthenticated(rt.session); err != nil {
		return err
	}

	var resumeFile, jobFile string
	switch {
	case keywordGapOpts.FromFile != "" && len(args) == 1:
		jobFile = args[0]
	case keywordGapOpts.FromFile == "" && len(args) == 2:
		resumeFile, jobFile = args[0], args[1]
	default:
		return fmt.Errorf("expected [resume-file] [job-description-file], or --from-file with [job-description-file]")
	}

	resumeText, err := resolveResumeText(cmd, rt, keywordGapOpts.FromFile, resumeFile)
	if err != nil {
		return err
	}
	jobContents, err := common.ReadCommandInputs(rt.logger, jobFile)
	if err != nil {
		return err
	}

	form := forms.New("keyword-gap",
		validate.KeywordGapRequest,
		func(ctx context.Context, req types.KeywordGapRequest) (types.KeywordGapResponse, error) {
			return rt.client.KeywordGap(ctx, req)
		},
		rt.logger)

	createInput := func(contents []string) (types.KeywordGapRequest, error) {
		if len(contents) != 2 {
			return types.KeywordGapRequest{}, fmt.Errorf("expected 2 inputs, got %d", len(contents))
		}
		return types.KeywordGapRequest{
			ResumeText:     contents[0],
			JobDescription: contents[1],
		}, nil
	}

	logDetails := func(input types.KeywordGapRequest, cfg common.CommandConfig) {
		rt.logger.Info("Starting keyword-gap analysis",
			"resume_chars", len(input.ResumeText),
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	err = common.RunFormCommand(
		cmd.Context(),
		rt.logger,
		keywordGapConfig,
		[]string{resumeText, jobContents[0]},
		createInput,
		form,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze keyword gap: %w", err)
	}
	rt.logger.Info("Keyword-gap analysis completed successfully")
	return nil
}
