package cli

import (
	"context"

	"atsbuddy/internal/api"
	"atsbuddy/internal/config"
	"atsbuddy/internal/errors"
	"atsbuddy/internal/session"
	"atsbuddy/internal/token"

	"github.com/spf13/cobra"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}

// Use variables of these types as the keys.
var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

var rootCmd = &cobra.Command{
	Use:   "atsbuddy",
	Short: "A CLI client for the ATS Buddy resume service",
	Long: `ATS Buddy is a command-line client for scoring resumes against job
descriptions, generating optimization suggestions, and analyzing keyword
gaps. Sign in with an email/password account or with Google; the session
token is kept until you log out or the server rejects it.`,
}

func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	// Attach the config and logger to the context, making them available to all subcommands
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

// getConfigFromContext is a helper function to get config from context
func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	panic("config not found in context") // Should not happen if properly initialized
}

// getLoggerFromContext is a helper function to get logger from context
func getLoggerFromContext(ctx context.Context) *errors.Logger {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger
	}
	panic("logger not found in context") // Should not happen if properly initialized
}

// runtime bundles the per-invocation session plumbing: one token store, one
// backend client, and the session manager subscribed to the client's expiry
// signal.
type runtime struct {
	cfg     *config.Config
	logger  *errors.Logger
	store   *token.Store
	client  *api.Client
	session *session.Manager
}

func buildRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	credsPath := cfg.Auth.CredentialsFile
	if credsPath == "" {
		var err error
		credsPath, err = token.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	store := token.NewStore(credsPath)

	client, err := api.NewClient(&cfg.API, store, logger)
	if err != nil {
		return nil, err
	}

	return &runtime{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		client:  client,
		session: session.NewManager(store, client, logger),
	}, nil
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(googleCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(keywordGapCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(versionCmd)
}
