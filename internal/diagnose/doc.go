// Package diagnose reports on the layout of a flyer folder tree.
//
// It lists what the generator would see: year folders, the images inside
// them with size and dimensions, stray files and images left in the root.
// CheckTarget additionally looks for the data block in the page.
//
//	in := diagnose.NewInspector(settings.ImageExtensions, settings.MaxProbeWorkers, logger)
//	report, err := in.Inspect(ctx, settings.RootPath)
//	report.Target = in.CheckTarget(settings.HTMLPath, settings.Identifier)
//	_ = diagnose.Render(os.Stdout, report)
package diagnose
