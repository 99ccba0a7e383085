package model

import (
	"strings"
	"time"
)

// DateLayout is the human-readable date format written into the page,
// e.g. "December 03, 2024".
const DateLayout = "January 02, 2006"

// DateSource records where a flyer's date came from.
type DateSource int

const (
	// DateFromFilename means the date was parsed from a YYYY-MM-DD run in the filename.
	DateFromFilename DateSource = iota

	// DateFromSchedule means the date was synthesized from the weekly
	// Saturday schedule because the filename carried no usable date.
	DateFromSchedule
)

// String returns "filename" or "schedule".
func (s DateSource) String() string {
	switch s {
	case DateFromFilename:
		return "filename"
	case DateFromSchedule:
		return "schedule"
	default:
		return "unknown"
	}
}

// Flyer represents one weekly meeting flyer image.
//
// Only Filename, Title, Description and Date are rendered into the page.
// The remaining fields are kept for reporting.
//
// Example:
//
//	cfg := &FlyerConfig{
//	    TitleFormat: "Weekly Literary Meeting - Session {session}",
//	    Description: "Tamil short story analysis and discussion",
//	}
//	f := NewFlyer("3.jpg", "3", when, DateFromSchedule, cfg)
//	// f.Title = "Weekly Literary Meeting - Session 3"
//	// f.Date  = "January 20, 2024"
type Flyer struct {
	// Filename is the image file name relative to its year folder.
	Filename string

	// Title is derived from FlyerConfig.TitleFormat.
	Title string

	// Description is the same for every flyer.
	Description string

	// Date is When formatted with DateLayout.
	Date string

	// Session is the session number shown in the title.
	Session string

	// When is the meeting date.
	When time.Time

	// DateSource tells whether When was parsed or synthesized.
	DateSource DateSource
}

// FlyerConfig holds the text used to build flyer records.
//
// TitleFormat supports a single placeholder:
//   - {session} - session number taken from the filename
type FlyerConfig struct {
	// TitleFormat is the title template.
	// Example: "Weekly Literary Meeting - Session {session}"
	TitleFormat string

	// Description is copied into every record.
	Description string
}

// NewFlyer creates a Flyer with its title and date text computed from cfg.
func NewFlyer(filename, session string, when time.Time, source DateSource, cfg *FlyerConfig) Flyer {
	return Flyer{
		Filename:    filename,
		Title:       strings.ReplaceAll(cfg.TitleFormat, "{session}", session),
		Description: cfg.Description,
		Date:        when.Format(DateLayout),
		Session:     session,
		When:        when,
		DateSource:  source,
	}
}
