package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MagickCodes/text-aufbereiter/internal/adapters/driving/tui/review"
	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
	"github.com/MagickCodes/text-aufbereiter/internal/core/ports/driving"
	"github.com/MagickCodes/text-aufbereiter/internal/core/services"
	"github.com/MagickCodes/text-aufbereiter/internal/textproc/pause"
)

var (
	prepareMode        string
	preparePreset      string
	prepareOutput      string
	prepareChapters    string
	prepareLists       string
	prepareHyphens     string
	prepareKeepURLs    bool
	prepareNoAbbrev    bool
	preparePhonetic    bool
	prepareInstruction string
	prepareReplace     []string
	prepareParagraph   float64
	prepareSentence    float64
	prepareSentenceOn  bool
	prepareYes         bool
	prepareJSON        bool
)

var prepareCmd = &cobra.Command{
	Use:   "prepare [file]",
	Short: "Clean a document for speech synthesis",
	Long: `Extracts the text, rewrites it chunk by chunk and writes a
speech-ready transcript with pause tags.

In standard mode pauses are inserted at paragraph (and optionally
sentence) boundaries. In meditation mode the text is preserved and
operator-authored pause directives are detected, reviewed and turned
into pause tags.

Examples:
  # Standard cleaning with the OpenAI default model
  aufbereiter prepare kapitel.txt

  # Local rules only, no provider calls
  aufbereiter prepare --local kapitel.txt

  # Meditation script with interactive pause review
  aufbereiter prepare --mode meditation entspannung.txt

  # Apply a saved preset
  aufbereiter prepare --preset hoerbuch roman.md`,
	Args: cobra.ExactArgs(1),
	RunE: runPrepare,
}

func init() {
	prepareCmd.Flags().StringVarP(&prepareMode, "mode", "m", "standard", "processing mode (standard, meditation)")
	prepareCmd.Flags().StringVarP(&preparePreset, "preset", "p", "", "apply a saved preset before other flags")
	prepareCmd.Flags().StringVarP(&prepareOutput, "output", "o", "", "output file (default: <input>.tts.txt)")
	prepareCmd.Flags().StringVar(&prepareChapters, "chapters", "", "chapter handling (keep, remove, spoken)")
	prepareCmd.Flags().StringVar(&prepareLists, "lists", "", "list handling (keep, prose)")
	prepareCmd.Flags().StringVar(&prepareHyphens, "hyphens", "", "hyphenation handling (join, keep)")
	prepareCmd.Flags().BoolVar(&prepareKeepURLs, "keep-urls", false, "keep URLs and email addresses")
	prepareCmd.Flags().BoolVar(&prepareNoAbbrev, "no-abbreviations", false, "skip abbreviation expansion")
	prepareCmd.Flags().BoolVar(&preparePhonetic, "phonetic", false, "apply phonetic respellings")
	prepareCmd.Flags().StringVar(&prepareInstruction, "instruction", "", "extra instruction for the rewrite step")
	prepareCmd.Flags().StringArrayVar(&prepareReplace, "replace", nil, "literal replacement as search=replace (repeatable)")
	prepareCmd.Flags().Float64Var(&prepareParagraph, "paragraph-pause", 0, "paragraph pause seconds (0 = default)")
	prepareCmd.Flags().Float64Var(&prepareSentence, "sentence-pause", 0, "sentence pause seconds, implies --sentence-pauses")
	prepareCmd.Flags().BoolVar(&prepareSentenceOn, "sentence-pauses", false, "insert pauses after sentences too")
	prepareCmd.Flags().BoolVarP(&prepareYes, "yes", "y", false, "meditation: accept all suggested pauses without review")
	prepareCmd.Flags().BoolVar(&prepareJSON, "json", false, "print run statistics as JSON")
	rootCmd.AddCommand(prepareCmd)
}

func runPrepare(cmd *cobra.Command, args []string) error {
	path := args[0]

	opts, err := buildOptions()
	if err != nil {
		return err
	}

	rewriter, err := newRewriter(cmd)
	if err != nil {
		return err
	}
	if rewriter != nil {
		defer rewriter.Close()
	}

	store, err := newSessionStore()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v, continuing without session history\n", err)
		store = nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	text, err := extractFile(ctx, cmd, path)
	if err != nil {
		return err
	}

	svcOpts := []services.PrepareOption{}
	if rewriter != nil {
		svcOpts = append(svcOpts, services.WithRewriter(rewriter))
	}
	if store != nil {
		svcOpts = append(svcOpts, services.WithSessionStore(store))
	}
	if progress := newProgressSink(cmd); progress != nil {
		svcOpts = append(svcOpts, services.WithProgress(progress))
	}
	svc := services.NewPrepareService(svcOpts...)

	doc := domain.Document{Source: filepath.Base(path), Text: text}
	result, err := svc.Prepare(ctx, doc, opts)
	if err != nil {
		// Cancellation is a normal outcome, not a failure.
		if errors.Is(err, context.Canceled) {
			finishProgress(cmd)
			cmd.Println("Cancelled, no transcript written.")
			return nil
		}
		if errors.Is(err, domain.ErrNoPausesFound) {
			return fmt.Errorf("%s\n%s", err, pause.NoPausesHint)
		}
		return err
	}
	finishProgress(cmd)

	transcript := result.Transcript
	if opts.Mode == domain.ModeMeditation {
		transcript, err = reviewPauses(cmd, svc, result)
		if errors.Is(err, review.ErrAborted) {
			cmd.Println("Review cancelled, no transcript written.")
			return nil
		}
		if err != nil {
			return err
		}
	}

	outPath := prepareOutput
	if outPath == "" {
		outPath = strings.TrimSuffix(path, filepath.Ext(path)) + ".tts.txt"
	}
	if err := os.WriteFile(outPath, []byte(transcript), 0o644); err != nil {
		return fmt.Errorf("writing transcript: %w", err)
	}

	if prepareJSON {
		return printSummaryJSON(cmd, outPath, result)
	}
	printSummary(cmd, outPath, result)
	return nil
}

// buildOptions merges defaults, the chosen preset and flag overrides.
func buildOptions() (domain.CleaningOptions, error) {
	opts := domain.DefaultCleaningOptions()

	if preparePreset != "" {
		store, err := newPresetStore()
		if err != nil {
			return opts, err
		}
		loaded, err := store.Get(preparePreset)
		if err != nil {
			return opts, fmt.Errorf("loading preset %q: %w", preparePreset, err)
		}
		opts = *loaded
	}

	opts.Mode = domain.ProcessingMode(prepareMode)
	if !opts.Mode.IsValid() {
		return opts, fmt.Errorf("invalid mode %q (standard, meditation)", prepareMode)
	}
	if prepareChapters != "" {
		opts.ChapterStyle = domain.ChapterStyle(prepareChapters)
		if !opts.ChapterStyle.IsValid() {
			return opts, fmt.Errorf("invalid chapter handling %q (keep, remove, spoken)", prepareChapters)
		}
	}
	if prepareLists != "" {
		opts.ListStyle = domain.ListStyle(prepareLists)
		if !opts.ListStyle.IsValid() {
			return opts, fmt.Errorf("invalid list handling %q (keep, prose)", prepareLists)
		}
	}
	if prepareHyphens != "" {
		opts.Hyphenation = domain.HyphenStyle(prepareHyphens)
		if !opts.Hyphenation.IsValid() {
			return opts, fmt.Errorf("invalid hyphenation %q (join, keep)", prepareHyphens)
		}
	}
	if prepareKeepURLs {
		opts.RemoveURLs = false
		opts.RemoveEmails = false
	}
	if prepareNoAbbrev {
		opts.ExpandAbbreviations = false
	}
	if preparePhonetic {
		opts.PhoneticCorrection = true
	}
	if prepareInstruction != "" {
		opts.CustomInstruction = prepareInstruction
	}
	if prepareParagraph > 0 {
		opts.Pauses.ParagraphSeconds = prepareParagraph
	}
	if prepareSentence > 0 {
		opts.Pauses.SentenceSeconds = prepareSentence
		opts.Pauses.SentenceEnabled = true
	}
	if prepareSentenceOn {
		opts.Pauses.SentenceEnabled = true
	}

	for _, rule := range prepareReplace {
		search, replace, ok := strings.Cut(rule, "=")
		if !ok || search == "" {
			return opts, fmt.Errorf("invalid replacement %q, expected search=replace", rule)
		}
		opts.Replacements = append(opts.Replacements, domain.ReplacementRule{Search: search, Replace: replace})
	}

	return opts, nil
}

// extractFile resolves the extractor for the path and runs it.
func extractFile(ctx context.Context, cmd *cobra.Command, path string) (string, error) {
	extractor, err := newExtractors().ForFile(path)
	if err != nil {
		return "", err
	}
	text, err := extractor.Extract(ctx, path, nil)
	if err != nil {
		return "", fmt.Errorf("extracting %s: %w", path, err)
	}
	return text, nil
}

// reviewPauses runs the interactive pause review, or applies all
// suggestions with --yes or on a non-TTY. Aborting the review
// surfaces review.ErrAborted so no transcript is written.
func reviewPauses(cmd *cobra.Command, svc driving.Preparer, result *domain.PrepareResult) (string, error) {
	if len(result.Pauses) == 0 {
		return result.Transcript, nil
	}

	for _, warning := range pause.Validate(result.Pauses) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", warning)
	}

	pauses := result.Pauses
	if !prepareYes && term.IsTerminal(int(os.Stdout.Fd())) {
		reviewed, err := review.Run(result.Pauses)
		if errors.Is(err, review.ErrAborted) {
			return "", err
		}
		if err != nil {
			return "", fmt.Errorf("pause review: %w", err)
		}
		pauses = reviewed
	}

	return svc.ApplyPauses(result.Transcript, pauses), nil
}

// newProgressSink returns a progress sink writing to stderr on a TTY.
func newProgressSink(cmd *cobra.Command) driving.ProgressSink {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}
	return driving.ProgressFunc(func(percent float64, eta string) {
		fmt.Fprintf(cmd.ErrOrStderr(), "\rProcessing %3.0f%% (remaining %s)", percent, eta)
	})
}

func finishProgress(cmd *cobra.Command) {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		fmt.Fprintln(cmd.ErrOrStderr())
	}
}

func printSummaryJSON(cmd *cobra.Command, outPath string, result *domain.PrepareResult) error {
	payload := struct {
		Output         string  `json:"output"`
		Chunks         int     `json:"chunks"`
		FallbackChunks int     `json:"fallback_chunks"`
		PromptTokens   int     `json:"prompt_tokens"`
		OutputTokens   int     `json:"output_tokens"`
		Pauses         int     `json:"pauses"`
		ElapsedSeconds float64 `json:"elapsed_seconds"`
	}{
		Output:         outPath,
		Chunks:         result.Chunks,
		FallbackChunks: result.FallbackChunks,
		PromptTokens:   result.Usage.PromptTokens,
		OutputTokens:   result.Usage.OutputTokens,
		Pauses:         len(result.Pauses),
		ElapsedSeconds: result.Elapsed.Seconds(),
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling summary: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func printSummary(cmd *cobra.Command, outPath string, result *domain.PrepareResult) {
	cmd.Printf("Wrote %s\n", outPath)
	cmd.Printf("  chunks: %d", result.Chunks)
	if result.FallbackChunks > 0 {
		cmd.Printf(" (%d via local rules)", result.FallbackChunks)
	}
	cmd.Println()
	if result.Usage.Total() > 0 {
		cmd.Printf("  tokens: %d prompt, %d output\n", result.Usage.PromptTokens, result.Usage.OutputTokens)
	}
	cmd.Printf("  elapsed: %s\n", result.Elapsed.Round(time.Second))
}
