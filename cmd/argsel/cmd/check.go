package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/argsel/internal/app"
)

var (
	checkChecks   []string
	checkFix      string
	checkBaseline bool
	checkFormat   string
)

var checkCmd = &cobra.Command{
	Use:   "check [patterns...]",
	Short: "Report swapped arguments",
	Long: "Checks Go packages (go/packages patterns such as ./...) and Java files or\n" +
		"directories. With no patterns, checks ./... from the current directory.\n" +
		"Exits 3 when findings are reported.",
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.StringSliceVar(&checkChecks, "checks", nil, "Checks to run (default: the configured checks)")
	f.StringVar(&checkFix, "fix", "none", "Apply fixes: none, permute or comment")
	f.BoolVar(&checkBaseline, "baseline", true, "Hide findings accepted in the baseline")
	f.StringVar(&checkFormat, "format", "text", "Output format: text or json")
}

func runCheck(cmd *cobra.Command, args []string) error {
	fix, err := app.ParseFixKind(checkFix)
	if err != nil {
		return err
	}
	if checkFormat != "text" && checkFormat != "json" {
		return fmt.Errorf("invalid --format %q (want text or json)", checkFormat)
	}
	color, err := resolveColor(colorFlag)
	if err != nil {
		return err
	}

	a, err := openApp(func(o *app.Options) {
		if cmd.Flags().Changed("checks") {
			o.Checks = checkChecks
		}
		o.NoBaseline = !checkBaseline
	})
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signalContext()
	defer stop()

	r, err := a.Check(ctx, args)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stderr, formatWarnings(r.Errors, color))

	fixed, err := a.ApplyFixes(ctx, r, fix)
	if err != nil {
		return fmt.Errorf("apply fixes: %w", err)
	}

	if checkFormat == "json" {
		if err := writeJSON(os.Stdout, r); err != nil {
			return err
		}
	} else {
		fmt.Print(formatReport(r, color))
		if fixed > 0 {
			fmt.Printf("⚡ fixed %d of %d findings (%s)\n", fixed, len(r.Findings), fix)
		}
	}

	if len(r.Findings) > fixed {
		return exitError{code: exitFindings}
	}
	return nil
}
