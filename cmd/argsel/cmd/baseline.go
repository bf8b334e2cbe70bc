package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var baselineJSON bool

var baselineCmd = &cobra.Command{
	Use:   "baseline",
	Short: "Manage accepted findings",
	Long: "A baseline records the current findings as accepted; later checks only\n" +
		"report findings that are not in it. Stored in .argsel/baseline.db.",
}

var baselineSaveCmd = &cobra.Command{
	Use:   "save [patterns...]",
	Short: "Accept every current finding",
	RunE:  runBaselineSave,
}

var baselineClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget all accepted findings",
	Args:  cobra.NoArgs,
	RunE:  runBaselineClear,
}

var baselineShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List accepted findings",
	Args:  cobra.NoArgs,
	RunE:  runBaselineShow,
}

func init() {
	baselineShowCmd.Flags().BoolVar(&baselineJSON, "json", false, "Output as JSON")
	baselineCmd.AddCommand(baselineSaveCmd)
	baselineCmd.AddCommand(baselineClearCmd)
	baselineCmd.AddCommand(baselineShowCmd)
}

func runBaselineSave(cmd *cobra.Command, args []string) error {
	a, err := openApp(nil)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signalContext()
	defer stop()

	b, err := a.SaveBaseline(ctx, args)
	if err != nil {
		return err
	}
	fmt.Printf("⚡ baseline saved: %d findings accepted\n", len(b.Entries))
	return nil
}

func runBaselineClear(cmd *cobra.Command, args []string) error {
	a, err := openApp(nil)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.ClearBaseline(); err != nil {
		return err
	}
	fmt.Println("⚡ baseline cleared")
	return nil
}

func runBaselineShow(cmd *cobra.Command, args []string) error {
	color, err := resolveColor(colorFlag)
	if err != nil {
		return err
	}
	a, err := openApp(nil)
	if err != nil {
		return err
	}
	defer a.Close()

	b, err := a.LoadBaseline()
	if err != nil {
		return err
	}
	if baselineJSON {
		return writeJSON(cmd.OutOrStdout(), b)
	}
	fmt.Print(formatBaseline(b, color))
	return nil
}
