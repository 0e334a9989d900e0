package cli

import (
	"context"
	"fmt"
	"os"

	"resuscan/internal/config"
	"resuscan/internal/errors"

	"github.com/spf13/cobra"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}

var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

// NewRootCommand builds the command tree. Configuration and the logger are
// loaded once before any subcommand runs and travel in the command context.
func NewRootCommand() *cobra.Command {
	var (
		configFile string
		logLevel   string
	)

	rootCmd := &cobra.Command{
		Use:   "resuscan",
		Short: "Score resumes for ATS compatibility and close skill gaps",
		Long: `Resuscan scores a resume against a target role the way an applicant
tracking system would, lists the skills the role needs that the resume
lacks, recommends courses and projects, rewrites bullet points with AI and
renders structured resumes to PDF.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if logLevel != "" {
				cfg.App.LogLevel = logLevel
			}

			logger, err := errors.New(cfg.App.LogLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			if err := config.ApplyVaultSecrets(cfg, logger); err != nil {
				return fmt.Errorf("failed to load vault secrets: %w", err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = context.WithValue(ctx, configKey, cfg)
			ctx = context.WithValue(ctx, loggerKey, logger)
			cmd.SetContext(ctx)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default: ./config.yaml, $HOME/.resuscan, /etc/resuscan)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newScoreCommand(),
		newSkillGapCommand(),
		newTipsCommand(),
		newRecommendCommand(),
		newAnalyzeCommand(),
		newImproveCommand(),
		newTemplatesCommand(),
		newRenderCommand(),
		newVersionsCommand(),
		newServeCommand(),
		newWorkerCommand(),
		newTokenCommand(),
		newVersionCommand(),
	)
	return rootCmd
}

// Execute runs the CLI with a cancellable context.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand()
	rootCmd.SetContext(ctx)
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func getConfigFromContext(ctx context.Context) (*config.Config, error) {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg, nil
	}
	return nil, fmt.Errorf("config not found in context")
}

func getLoggerFromContext(ctx context.Context) (*errors.Logger, error) {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger, nil
	}
	return nil, fmt.Errorf("logger not found in context")
}
