// Package generate runs the flyer data pipeline: scan the folder tree,
// render the catalog and splice it into the weekly meeting page.
//
// # Basic Usage
//
//	gen := generate.NewGenerator(settings, logger, func(e model.ProgressEvent) {
//	    fmt.Println(e.Message)
//	})
//
//	summary, err := gen.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(summary.Catalog.Total(), "flyers")
//
// Progress is reported through the callback with the levels defined in
// package model. Verbose events carry the first lines of the generated code.
package generate
