package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/anjirai/weekly-flyers/internal/generate"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the flyer data into the weekly meeting page",
	Long: `Scan the year folders under the flyer root, infer a date for every flyer
and replace the flyer data block of the page. Running it twice without
changes to the folders leaves the page byte-for-byte identical.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("root", "", "flyer root folder (overrides config)")
	generateCmd.Flags().String("html", "", "page to update (overrides config)")
	generateCmd.Flags().Bool("dry-run", false, "render the data block without writing the page")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	if err := applyFlags(cmd); err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	out := cmd.OutOrStdout()
	rule := strings.Repeat("=", 50)
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "  Weekly Flyers - Data Generator")
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out)

	printer := newProgressPrinter(out, verbose)
	gen := generate.NewGenerator(settings, logger, printer.handle, generate.WithDryRun(dryRun))

	summary, err := gen.Run(cmd.Context())
	if err != nil {
		return err
	}
	logger.Debug("generate finished",
		zap.Int("flyers", summary.Catalog.Total()),
		zap.Bool("changed", summary.Result.Changed),
		zap.Bool("written", summary.Result.Written))

	fmt.Fprintln(out)
	fmt.Fprintln(out, rule)
	if dryRun {
		fmt.Fprintln(out, "Dry run complete. The page was not modified.")
	} else {
		fmt.Fprintln(out, "Done. Refresh your browser to see the flyers.")
	}
	fmt.Fprintln(out, rule)

	return nil
}
