package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/cfoot/internal/config"
	"github.com/theirongolddev/cfoot/internal/tui"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set your profile and preferences",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, err := tui.RunSetup(appCfg)
	if errors.Is(err, tui.ErrAborted) {
		fmt.Println("  Setup cancelled, nothing saved.")
		return nil
	}
	if err != nil {
		return err
	}
	appCfg = cfg

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `cfoot setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
