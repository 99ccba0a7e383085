// Package ioutils provides file system and image inspection utilities.
//
// # File Operations
//
//	// Read a page
//	html, err := ioutils.ReadText("/site/weeklyMeeting.html")
//
//	// Overwrite it in place, keeping its permissions
//	err = ioutils.OverwriteFile(ctx, "/site/weeklyMeeting.html", []byte(updated))
//
//	// Human readable size
//	ioutils.FormatSize(3584) // "3.5 KB"
//
// # Image Inspection
//
// The ImageService reads flyer dimensions from the image header:
//
//	svc := ioutils.NewImageService()
//	info, err := svc.Probe(ctx, "/flyers/2024/1.webp")
//	fmt.Println(info) // "1080x1350 webp"
package ioutils
