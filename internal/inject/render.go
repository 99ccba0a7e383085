package inject

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/anjirai/weekly-flyers/internal/model"
)

const step = "    "

// Render produces the JavaScript declaration for catalog:
//
//	const flyersByYear = {
//	    "2024": [
//	        {
//	            filename: "1.jpg",
//	            title: "Weekly Literary Meeting - Session 1",
//	            description: "Tamil short story analysis and discussion",
//	            date: "January 06, 2024"
//	        }
//	    ]
//	};
//
// indent is prepended to every line but the first, which is expected to
// follow existing indentation in the file.
func Render(catalog *model.Catalog, keyword, identifier, indent string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s = {\n", keyword, identifier)

	buckets := catalog.Buckets()
	for yi, bucket := range buckets {
		fmt.Fprintf(&sb, "%s%s%s: [\n", indent, step, Quote(bucket.Year))

		for i, f := range bucket.Flyers {
			sb.WriteString(indent + step + step + "{\n")
			writeField(&sb, indent, "filename", f.Filename, true)
			writeField(&sb, indent, "title", f.Title, true)
			writeField(&sb, indent, "description", f.Description, true)
			writeField(&sb, indent, "date", f.Date, false)
			sb.WriteString(indent + step + step + "}" + comma(i, len(bucket.Flyers)) + "\n")
		}

		sb.WriteString(indent + step + "]" + comma(yi, len(buckets)) + "\n")
	}

	sb.WriteString(indent + "};")
	return sb.String()
}

func writeField(sb *strings.Builder, indent, key, value string, more bool) {
	sb.WriteString(indent + step + step + step + key + ": " + Quote(value))
	if more {
		sb.WriteByte(',')
	}
	sb.WriteByte('\n')
}

func comma(i, n int) string {
	if i < n-1 {
		return ","
	}
	return ""
}

// Quote returns s as an ASCII-only double-quoted string literal that is both
// valid JSON and valid JavaScript. Non-ASCII runes are written as \uXXXX
// (surrogate pairs above U+FFFF) so the page encoding does not matter.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			switch {
			case r >= 0x20 && r < 0x7f:
				sb.WriteRune(r)
			case r > 0xffff:
				r1, r2 := utf16.EncodeRune(r)
				fmt.Fprintf(&sb, `\u%04x\u%04x`, r1, r2)
			default:
				fmt.Fprintf(&sb, `\u%04x`, r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
