package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
	"github.com/MagickCodes/text-aufbereiter/internal/core/services"
	"github.com/MagickCodes/text-aufbereiter/internal/logger"
)

// watchSettle is how long a file must stay quiet before it is
// processed; editors and downloads write in bursts.
const watchSettle = 2 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and prepare new documents",
	Long: `Watches a directory and runs the preparation pipeline on every new or
changed supported file. The transcript is written next to the input as
<name>.tts.txt. Already-produced transcripts are ignored.

The prepare flags apply to every file, so a watch over an audiobook
inbox can run with --chapters spoken --sentence-pauses permanently.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().AddFlagSet(prepareCmd.Flags())
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	opts, err := buildOptions()
	if err != nil {
		return err
	}
	if opts.Mode == domain.ModeMeditation && !prepareYes {
		return fmt.Errorf("watch mode cannot review pauses interactively, add --yes to accept suggestions")
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

	svcOpts := []services.PrepareOption{}
	if rewriter != nil {
		svcOpts = append(svcOpts, services.WithRewriter(rewriter))
	}
	if store != nil {
		svcOpts = append(svcOpts, services.WithSessionStore(store))
	}
	svc := services.NewPrepareService(svcOpts...)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", dir)

	// Per-path settle timers, reset on every write burst.
	var (
		mu     sync.Mutex
		timers = map[string]*time.Timer{}
	)
	defer func() {
		mu.Lock()
		defer mu.Unlock()
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			cmd.Println("Stopped.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			path := event.Name
			if !watchable(path) {
				continue
			}

			mu.Lock()
			if timer, exists := timers[path]; exists {
				timer.Reset(watchSettle)
			} else {
				timers[path] = time.AfterFunc(watchSettle, func() {
					mu.Lock()
					delete(timers, path)
					mu.Unlock()
					prepareWatched(ctx, cmd, svc, path, opts)
				})
			}
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// watchable filters out transcripts and unsupported formats.
func watchable(path string) bool {
	if strings.HasSuffix(path, ".tts.txt") {
		return false
	}
	_, err := newExtractors().ForFile(path)
	return err == nil
}

// prepareWatched runs one pipeline pass for a settled file.
func prepareWatched(ctx context.Context, cmd *cobra.Command, svc *services.PrepareService, path string, opts domain.CleaningOptions) {
	if ctx.Err() != nil {
		return
	}
	cmd.Printf("Preparing %s\n", filepath.Base(path))

	text, err := extractFile(ctx, cmd, path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	result, err := svc.Prepare(ctx, domain.Document{Source: filepath.Base(path), Text: text}, opts)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s: %v\n", filepath.Base(path), err)
		}
		return
	}

	transcript := result.Transcript
	if opts.Mode == domain.ModeMeditation {
		transcript = svc.ApplyPauses(transcript, result.Pauses)
	}

	outPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".tts.txt"
	if err := os.WriteFile(outPath, []byte(transcript), 0o644); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: writing %s: %v\n", outPath, err)
		return
	}
	cmd.Printf("Wrote %s\n", filepath.Base(outPath))
}
