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

var checkCmd = &cobra.Command{
	Use:   "check [resume-file] [job-description-file]",
	Short: "Score a resume against a job description",
	Long: `Run the ATS compatibility check for a resume and a job description.
Both inputs are plain text files. With --from-file the resume text is
extracted from a PDF or DOCX document instead, and only the job description
file is passed as an argument.`,
	Args:    cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error { return applyDefaultFormat(cmd, &checkConfig) },
	RunE:    runCheck,
}

var checkConfig common.CommandConfig

var checkOpts struct {
	TargetRole string
	Industry   string
	FromFile   string
}

func init() {
	checkCmd.Flags().StringVarP(&checkConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	checkCmd.Flags().StringVar(&checkConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	checkCmd.Flags().StringVar(&checkOpts.TargetRole, "role", "", "Optional target role")
	checkCmd.Flags().StringVar(&checkOpts.Industry, "industry", "", "Optional target industry")
	checkCmd.Flags().StringVar(&checkOpts.FromFile, "from-file", "", "Fill the resume text from a PDF or DOCX document")

	_ = checkCmd.RegisterFlagCompletionFunc("format", formatCompletion)
}

func runCheck(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime(cmd)
	if err != nil {
		return err
	}
	if err := session.RequireAuthenticated(rt.session); err != nil {
		return err
	}

	var resumeFile, jobFile string
	switch {
	case checkOpts.FromFile != "" && len(args) == 1:
		jobFile = args[0]
	case checkOpts.FromFile == "" && len(args) == 2:
		resumeFile, jobFile = args[0], args[1]
	default:
		return fmt.Errorf("expected [resume-file] [job-description-file], or --from-file with [job-description-file]")
	}

	resumeText, err := resolveResumeText(cmd, rt, checkOpts.FromFile, resumeFile)
	if err != nil {
		return err
	}
	jobContents, err := common.ReadCommandInputs(rt.logger, jobFile)
	if err != nil {
		return err
	}

	form := forms.New("ats-check",
		validate.ATSCheckRequest,
		func(ctx context.Context, req types.ATSCheckRequest) (types.ATSCheckResponse, error) {
			return rt.client.CheckATS(ctx, req)
		},
		rt.logger)

	createInput := func(contents []string) (types.ATSCheckRequest, error) {
		if len(contents) != 2 {
			return types.ATSCheckRequest{}, fmt.Errorf("expected 2 inputs, got %d", len(contents))
		}
		return types.ATSCheckRequest{
			ResumeText:     contents[0],
			JobDescription: contents[1],
			TargetRole:     checkOpts.TargetRole,
			Industry:       checkOpts.Industry,
		}, nil
	}

	logDetails := func(input types.ATSCheckRequest, cfg common.CommandConfig) {
		rt.logger.Info("Starting ATS check",
			"resume_chars", len(input.ResumeText),
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	err = common.RunFormCommand(
		cmd.Context(),
		rt.logger,
		checkConfig,
		[]string{resumeText, jobContents[0]},
		createInput,
		form,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to run ATS check: %w", err)
	}
	rt.logger.Info("ATS check completed successfully")
	return nil
}
