package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
	"github.com/MagickCodes/text-aufbereiter/internal/core/services"
	"github.com/MagickCodes/text-aufbereiter/internal/textproc/pause"
)

var scanJSON bool

var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "List pause directives in a meditation script",
	Long: `Scans a script for pause directive lines without modifying anything.
Shows each detected directive with its line number and the suggested
pause duration, plus advisory warnings for unusual values.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	path := args[0]

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	text, err := extractFile(ctx, cmd, path)
	if err != nil {
		return err
	}

	svc := services.NewPrepareService()
	pauses, warnings := svc.ScanPauses(text)

	if scanJSON {
		return outputScanJSON(cmd, pauses, warnings)
	}
	return outputScanTable(cmd, pauses, warnings)
}

func outputScanJSON(cmd *cobra.Command, pauses []domain.DetectedPause, warnings []string) error {
	payload := struct {
		Pauses   []domain.DetectedPause `json:"pauses"`
		Warnings []string               `json:"warnings,omitempty"`
	}{Pauses: pauses, Warnings: warnings}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling scan result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputScanTable(cmd *cobra.Command, pauses []domain.DetectedPause, warnings []string) error {
	if len(pauses) == 0 {
		cmd.Println(pause.NoPausesHint)
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"#", "Zeile", "Anweisung", "Pause"})
	for i, p := range pauses {
		t.AppendRow(table.Row{i + 1, p.Line, p.Instruction, domain.FormatPauseTag(p.Suggested)})
	}
	t.SetStyle(table.StyleLight)
	t.Render()

	for _, warning := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", warning)
	}
	return nil
}
