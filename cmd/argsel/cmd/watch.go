package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/corey/argsel/internal/app"
)

var watchCmd = &cobra.Command{
	Use:   "watch [patterns...]",
	Short: "Re-check on every source change",
	Long:  "Checks once, then again whenever a Go or Java file in the project changes. Stop with Ctrl-C.",
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	color, err := resolveColor(colorFlag)
	if err != nil {
		return err
	}
	a, err := openApp(nil)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signalContext()
	defer stop()

	p := newPalette(color)
	fmt.Printf("%s⚡ watching %s%s\n", p.bold, a.Root, p.reset)
	return a.Watch(ctx, args, func(r *app.Report, err error) {
		fmt.Printf("\n%s── %s ──%s\n", p.gray, time.Now().Format(time.TimeOnly), p.reset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", describeError(err))
			return
		}
		fmt.Fprint(os.Stderr, formatWarnings(r.Errors, color))
		fmt.Print(formatReport(r, color))
	})
}
