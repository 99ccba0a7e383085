// Package scan builds the flyer catalog from an image folder tree.
//
// This package contains:
//   - Natural filename ordering (NaturalCompare, NaturalSort)
//   - Date inference from YYYY-MM-DD filenames with a weekly Saturday fallback
//   - The Scanner that turns year folders into model.YearBuckets
//
// # Natural Order
//
//	names := []string{"10.jpg", "2.jpg", "1.jpg"}
//	scan.NaturalSort(names) // ["1.jpg", "2.jpg", "10.jpg"]
//
// # Dates
//
// A filename containing a valid YYYY-MM-DD date uses it. Any other flyer gets
// the first Saturday of its year plus one week per position in the sorted
// folder:
//
//	scan.ScheduledDate(2024, 0) // Saturday, January 6, 2024
//	scan.ScheduledDate(2024, 2) // Saturday, January 20, 2024
package scan
