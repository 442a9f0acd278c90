package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/snappy-loop/studio/internal/app"
	"github.com/snappy-loop/studio/internal/config"
	"github.com/snappy-loop/studio/internal/llm"
	"github.com/snappy-loop/studio/internal/services"
	"github.com/spf13/cobra"
)

// cliOptions are the flags shared by every subcommand.
type cliOptions struct {
	outDir  string
	backend string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	root := &cobra.Command{
		Use:           "studio",
		Short:         "Generate YouTube scripts and thumbnails from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
			if opts.verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}
	root.PersistentFlags().StringVarP(&opts.outDir, "out-dir", "o", ".", "directory for generated files")
	root.PersistentFlags().StringVar(&opts.backend, "backend", "", "LLM backend: genai, langchaingo or chat (default from LLM_BACKEND)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newScriptCmd(opts),
		newThumbnailCmd(opts),
		newAdviceCmd(opts),
		newSearchCmd(opts),
		newHashKeyCmd(),
	)
	return root
}

// loadStudio builds a StudioService from the environment, applying CLI overrides.
func loadStudio(cmd *cobra.Command, opts *cliOptions) (*services.StudioService, error) {
	cfg := config.Load()
	if opts.backend != "" {
		cfg.LLMBackend = opts.backend
	}
	return app.NewStudio(cmd.Context(), cfg)
}

// credentialsFromEnv reads the Gemini key for a single invocation.
func credentialsFromEnv() llm.Credentials {
	return llm.Credentials{APIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))}
}

// writeOutput saves data under the output directory and returns the path.
func writeOutput(opts *cliOptions, name string, data []byte) (string, error) {
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(opts.outDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
