// Package config provides configuration management for the flyer tools.
//
// This package handles:
//   - Loading settings from JSON, TOML or YAML files
//   - Default configuration values
//   - FLYERS_* environment overrides
//   - Conversion to model.FlyerConfig
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Scans ~/Website Content/images/ShortStoryFlyer
//	// Updates ~/Website Content/src/html/weeklyMeeting.html
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/flyers.toml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Environment
//
// FLYERS_ROOT, FLYERS_HTML and FLYERS_IDENTIFIER override the values read
// from the file. Command line flags override both.
package config
