// Package cli implements the command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MagickCodes/text-aufbereiter/internal/adapters/driven/config/file"
	"github.com/MagickCodes/text-aufbereiter/internal/adapters/driven/extract"
	"github.com/MagickCodes/text-aufbereiter/internal/adapters/driven/extract/docx"
	"github.com/MagickCodes/text-aufbereiter/internal/adapters/driven/extract/html"
	"github.com/MagickCodes/text-aufbereiter/internal/adapters/driven/extract/plaintext"
	"github.com/MagickCodes/text-aufbereiter/internal/adapters/driven/rewrite/ollama"
	"github.com/MagickCodes/text-aufbereiter/internal/adapters/driven/rewrite/openai"
	"github.com/MagickCodes/text-aufbereiter/internal/adapters/driven/storage/sqlite"
	"github.com/MagickCodes/text-aufbereiter/internal/core/ports/driven"
	"github.com/MagickCodes/text-aufbereiter/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Shared services, wired lazily so commands that never touch them
// (version, presets list) pay nothing.
var (
	presetStore  driven.PresetStore
	sessionStore driven.SessionStore
	extractors   driven.ExtractorRegistry
)

// Global flags.
var (
	flagVerbose  bool
	flagProvider string
	flagModel    string
	flagBaseURL  string
	flagLocal    bool
)

var rootCmd = &cobra.Command{
	Use:   "aufbereiter",
	Short: "Prepare German text for speech synthesis",
	Long: `aufbereiter cleans raw text for text-to-speech pipelines: it expands
abbreviations, rewrites chapters and lists for listening, inserts pause
tags and, in meditation mode, turns operator-authored pause directives
into reviewed pause tags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", "openai", "rewrite provider (openai, ollama)")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "model name (provider default if empty)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "provider base URL (provider default if empty)")
	rootCmd.PersistentFlags().BoolVar(&flagLocal, "local", false, "skip the rewrite provider, local rules only")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRewriter builds the configured rewrite adapter, or nil with
// --local. The provider is pinged once so a bad key or unreachable
// server fails before any document work starts.
func newRewriter(cmd *cobra.Command) (driven.Rewriter, error) {
	if flagLocal {
		return nil, nil
	}

	var (
		rewriter driven.Rewriter
		err      error
	)
	switch flagProvider {
	case "openai":
		rewriter, err = openai.New(openai.Config{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: flagBaseURL,
			Model:   flagModel,
		})
	case "ollama":
		rewriter = ollama.New(ollama.Config{
			BaseURL: flagBaseURL,
			Model:   flagModel,
		})
	default:
		return nil, fmt.Errorf("unknown provider %q", flagProvider)
	}
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	if err := rewriter.Ping(pingCtx); err != nil {
		return nil, fmt.Errorf("provider %s unreachable: %w (use --local for rule-based cleaning)", flagProvider, err)
	}

	logger.Info("using %s model %s", flagProvider, rewriter.ModelName())
	return rewriter, nil
}

// newExtractors returns the extractor registry, built once.
func newExtractors() driven.ExtractorRegistry {
	if extractors == nil {
		reg := extract.NewRegistry()
		reg.Register(plaintext.New())
		reg.Register(html.New())
		reg.Register(docx.New())
		extractors = reg
	}
	return extractors
}

// newPresetStore returns the preset store, built once.
func newPresetStore() (driven.PresetStore, error) {
	if presetStore == nil {
		store, err := file.NewPresetStore("")
		if err != nil {
			return nil, fmt.Errorf("opening preset store: %w", err)
		}
		presetStore = store
	}
	return presetStore, nil
}

// newSessionStore returns the session store, built once.
func newSessionStore() (driven.SessionStore, error) {
	if sessionStore == nil {
		store, err := sqlite.NewStore("")
		if err != nil {
			return nil, fmt.Errorf("opening session store: %w", err)
		}
		sessionStore = store
	}
	return sessionStore, nil
}
