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

var optimizeCmd = &cobra.Command{
	Use:   "optimize [resume-file]",
	Short: "Generate optimization suggestions for a resume",
	Long: `Generate an optimized summary, rewritten bullets, and UAE localization
tips for a resume. A job description is optional here: pass one with --job
to also get skills-to-add suggestions targeted at that posting. With
--from-file the resume text is extracted from a PDF or DOCX document and no
resume file argument is needed.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error { return applyDefaultFormat(cmd, &optimizeConfig) },
	RunE:    runOptimize,
}

var optimizeConfig common.CommandConfig

var optimizeOpts struct {
	JobFile    string
	TargetRole string
	Emirate    string
	FromFile   string
}

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	optimizeCmd.Flags().StringVar(&optimizeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	optimizeCmd.Flags().StringVar(&optimizeOpts.JobFile, "job", "", "Optional job description file")
	optimizeCmd.Flags().StringVar(&optimizeOpts.TargetRole, "role", "", "Optional target role")
	optimizeCmd.Flags().StringVar(&optimizeOpts.Emirate, "emirate", "", "Optional preferred emirate")
	optimizeCmd.Flags().StringVar(&optimizeOpts.FromFile, "from-file", "", "Fill the resume text from a PDF or DOCX document")

	_ = optimizeCmd.RegisterFlagCompletionFunc("format", formatCompletion)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime(cmd)
	if err != nil {
		return err
	}
	if err := session.RequireAuthenticated(rt.session); err != nil {
		return err
	}

	var resumeFile string
	switch {
	case optimizeOpts.FromFile != "" && len(args) == 0:
	case optimizeOpts.FromFile == "" && len(args) == 1:
		resumeFile = args[0]
	default:
		return fmt.Errorf("expected [resume-file], or --from-file with no arguments")
	}

	resumeText, err := resolveResumeText(cmd, rt, optimizeOpts.FromFile, resumeFile)
	if err != nil {
		return err
	}

	jobDescription := ""
	if optimizeOpts.JobFile != "" {
		jobContents, err := common.ReadCommandInputs(rt.logger, optimizeOpts.JobFile)
		if err != nil {
			return err
		}
		jobDescription = jobContents[0]
	}

	form := forms.New("optimize",
		validate.OptimizeRequest,
		func(ctx context.Context, req types.OptimizeRequest) (types.OptimizeResponse, error) {
			return rt.client.Optimize(ctx, req)
		},
		rt.logger)

	createInput := func(contents []string) (types.OptimizeRequest, error) {
		if len(contents) != 2 {
			return types.OptimizeRequest{}, fmt.Errorf("expected 2 inputs, got %d", len(contents))
		}
		return types.OptimizeRequest{
			ResumeText:       contents[0],
			JobDescription:   contents[1],
			TargetRole:       optimizeOpts.TargetRole,
			PreferredEmirate: optimizeOpts.Emirate,
		}, nil
	}

	logDetails := func(input types.OptimizeRequest, cfg common.CommandConfig) {
		rt.logger.Info("Starting resume optimization",
			"resume_chars", len(input.ResumeText),
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	err = common.RunFormCommand(
		cmd.Context(),
		rt.logger,
		optimizeConfig,
		[]string{resumeText, jobDescription},
		createInput,
		form,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to optimize resume: %w", err)
	}
	rt.logger.Info("Resume optimization completed successfully")
	return nil
}
