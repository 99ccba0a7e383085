// Package model defines the data structures shared by the flyer tools.
//
// # Flyer
//
// Flyer is one meeting flyer image with the text shown on the page:
//
//	f := model.NewFlyer("flyer-2024-12-03.png", "2024", when, model.DateFromFilename, cfg)
//	fmt.Println(f.Title) // "Weekly Literary Meeting - Session 2024"
//	fmt.Println(f.Date)  // "December 03, 2024"
//
// # Catalog
//
// Catalog groups flyers into year buckets kept in ascending year order:
//
//	var c model.Catalog
//	c.Put("2025", flyers2025)
//	c.Put("2024", flyers2024)
//	c.Years() // ["2024", "2025"]
//
// A catalog is rebuilt from the folder tree on every run and never persisted
// on its own.
package model
