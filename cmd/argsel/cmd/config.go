package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	Long:  "Prints the configuration argsel uses here as YAML: the defaults merged with .argsel.yaml or --config.",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	a, err := openApp(nil)
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.Config.Marshal()
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	source := a.Config.Source
	if source == "" {
		source = "built-in defaults"
	}
	fmt.Printf("# root:     %s\n# source:   %s\n# baseline: %s\n", a.Root, source, a.Paths.Baseline)
	fmt.Print(string(out))
	return nil
}
