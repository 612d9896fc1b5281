package cli

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage stored preparation sessions",
	Long:  `List, export and delete results of earlier preparation runs.`,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions",
	RunE:  runSessionsList,
}

var sessionsExportCmd = &cobra.Command{
	Use:   "export [key]",
	Short: "Print or write a stored transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsExport,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete [key]",
	Short: "Delete a stored session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

var sessionsExportOutput string

func init() {
	sessionsExportCmd.Flags().StringVarP(&sessionsExportOutput, "output", "o", "", "write to file instead of stdout")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsExportCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func runSessionsList(cmd *cobra.Command, _ []string) error {
	store, err := newSessionStore()
	if err != nil {
		return err
	}

	infos, err := store.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}

	if len(infos) == 0 {
		cmd.Println("No sessions stored.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Key", "Chunks", "Size", "Saved"})
	for _, info := range infos {
		t.AppendRow(table.Row{info.Key, info.Chunks, fmt.Sprintf("%d B", info.SizeBytes), info.SavedAt.Local().Format("2006-01-02 15:04")})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
	return nil
}

func runSessionsExport(cmd *cobra.Command, args []string) error {
	store, err := newSessionStore()
	if err != nil {
		return err
	}

	result, err := store.Load(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("loading session %q: %w", args[0], err)
	}

	if sessionsExportOutput != "" {
		if err := os.WriteFile(sessionsExportOutput, []byte(result.Transcript), 0o644); err != nil {
			return fmt.Errorf("writing transcript: %w", err)
		}
		cmd.Printf("Wrote %s\n", sessionsExportOutput)
		return nil
	}

	cmd.Print(result.Transcript)
	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	store, err := newSessionStore()
	if err != nil {
		return err
	}

	if err := store.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("deleting session %q: %w", args[0], err)
	}
	cmd.Printf("Deleted session %q\n", args[0])
	return nil
}
