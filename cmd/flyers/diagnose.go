package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/anjirai/weekly-flyers/internal/diagnose"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Report on the layout of the flyer folder",
	Long: `List the flyer root, its year folders and the images inside them with
size and dimensions, stray files, and whether the page has a flyer data block.`,
	Args: cobra.NoArgs,
	RunE: runDiagnose,
}

func init() {
	diagnoseCmd.Flags().String("root", "", "flyer root folder (overrides config)")
	diagnoseCmd.Flags().String("html", "", "page to check (overrides config)")
}

func runDiagnose(cmd *cobra.Command, _ []string) error {
	if err := applyFlags(cmd); err != nil {
		return err
	}

	in := diagnose.NewInspector(settings.ImageExtensions, settings.MaxProbeWorkers, logger)
	report, inspectErr := in.Inspect(cmd.Context(), settings.RootPath)
	if report.Exists && inspectErr == nil {
		report.Target = in.CheckTarget(settings.HTMLPath, settings.Identifier)
	}

	if err := diagnose.Render(cmd.OutOrStdout(), report); err != nil {
		return err
	}
	if inspectErr != nil {
		logger.Debug("inspect failed", zap.Error(inspectErr))
	}
	return inspectErr
}
