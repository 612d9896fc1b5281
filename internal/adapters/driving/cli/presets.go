package cli

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage cleaning presets",
	Long:  `Save, list, show and delete named cleaning configurations.`,
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved presets",
	RunE:  runPresetsList,
}

var presetsSaveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Save the current flag configuration as a preset",
	Long: `Builds a cleaning configuration from the prepare flags and stores it
under the given name.

Example:
  aufbereiter presets save hoerbuch --chapters spoken --sentence-pauses`,
	Args: cobra.ExactArgs(1),
	RunE: runPresetsSave,
}

var presetsShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print a preset as TOML",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetsShow,
}

var presetsDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetsDelete,
}

func init() {
	// The save command reuses the prepare flag set so a working
	// combination can be captured verbatim.
	presetsSaveCmd.Flags().AddFlagSet(prepareCmd.Flags())

	presetsCmd.AddCommand(presetsListCmd)
	presetsCmd.AddCommand(presetsSaveCmd)
	presetsCmd.AddCommand(presetsShowCmd)
	presetsCmd.AddCommand(presetsDeleteCmd)
	rootCmd.AddCommand(presetsCmd)
}

func runPresetsList(cmd *cobra.Command, _ []string) error {
	store, err := newPresetStore()
	if err != nil {
		return err
	}

	names, err := store.List()
	if err != nil {
		return fmt.Errorf("listing presets: %w", err)
	}

	if len(names) == 0 {
		cmd.Println("No presets saved.")
		return nil
	}
	for _, name := range names {
		cmd.Println(name)
	}
	return nil
}

func runPresetsSave(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions()
	if err != nil {
		return err
	}

	store, err := newPresetStore()
	if err != nil {
		return err
	}
	if err := store.Save(args[0], opts); err != nil {
		return fmt.Errorf("saving preset: %w", err)
	}

	cmd.Printf("Saved preset %q\n", args[0])
	return nil
}

func runPresetsShow(cmd *cobra.Command, args []string) error {
	store, err := newPresetStore()
	if err != nil {
		return err
	}

	opts, err := store.Get(args[0])
	if err != nil {
		return fmt.Errorf("loading preset %q: %w", args[0], err)
	}

	data, err := toml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("rendering preset: %w", err)
	}
	cmd.Print(string(data))
	return nil
}

func runPresetsDelete(cmd *cobra.Command, args []string) error {
	store, err := newPresetStore()
	if err != nil {
		return err
	}

	if err := store.Delete(args[0]); err != nil {
		return fmt.Errorf("deleting preset %q: %w", args[0], err)
	}
	cmd.Printf("Deleted preset %q\n", args[0])
	return nil
}
