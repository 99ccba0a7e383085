package scan

import (
	"regexp"
	"strconv"
	"time"
)

var (
	isoDatePattern = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	numberPattern  = regexp.MustCompile(`\d+`)
)

// DateFromFilename extracts the first YYYY-MM-DD run from name.
//
// The run must be a real calendar date: "flyer-2024-12-03.png" yields
// December 3, 2024, while "flyer-2024-13-99.png" yields ok == false.
// Only the first run is considered.
func DateFromFilename(name string) (time.Time, bool) {
	m := isoDatePattern.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, false
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if year < 1 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 -> Mar 1); reject it instead.
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

// FirstSaturday returns the first Saturday on or after January 1 of year.
func FirstSaturday(year int) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(time.Saturday) - int(jan1.Weekday()) + 7) % 7
	return jan1.AddDate(0, 0, offset)
}

// ScheduledDate returns the synthesized date for the flyer at index in a
// year's sorted sequence: the first Saturday of the year plus index weeks.
func ScheduledDate(year, index int) time.Time {
	return FirstSaturday(year).AddDate(0, 0, 7*index)
}

// SessionNumber returns the first run of digits in name, or index+1 when
// the name has none.
func SessionNumber(name string, index int) string {
	if n := numberPattern.FindString(name); n != "" {
		return n
	}
	return strconv.Itoa(index + 1)
}
