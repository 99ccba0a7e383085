package inject

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMarkerNotFound is returned when the page has no
	// "const <identifier> = {" declaration.
	ErrMarkerNotFound = errors.New("data block not found")

	// ErrAmbiguousMarker is returned when the declaration appears more than once.
	ErrAmbiguousMarker = errors.New("data block declared more than once")

	// ErrUnterminatedBlock is returned when the declaration has no balancing
	// "};". It wraps ErrMarkerNotFound.
	ErrUnterminatedBlock = fmt.Errorf("%w: missing closing };", ErrMarkerNotFound)
)

var keywords = []string{"const", "let", "var"}

// Block is the location of "<keyword> <identifier> = { ... };" in a file.
//
// Content[Start:End] spans from the keyword up to and including the
// semicolon; the whitespace in front of the keyword is left to the caller.
type Block struct {
	Start int
	End   int

	// Keyword is const, let or var as found in the file.
	Keyword string

	// Indent is the whitespace between the previous newline and Start.
	// Empty when the declaration shares its line with other text.
	Indent string

	// Line is the 1-based line number of Start.
	Line int

	// Body is the text between the outer braces.
	Body string
}

// Records counts the flyer objects in the block body.
func (b Block) Records() int {
	return strings.Count(b.Body, "filename:")
}

type openMarker struct {
	start, brace int
	keyword      string
}

// Locate finds the single data block declaring identifier in content.
//
// The close marker is the brace balancing the opening one, skipping string
// literals and comments, followed by optional whitespace and ";".
func Locate(content, identifier string) (Block, error) {
	opens := findOpenMarkers(content, identifier)
	switch {
	case len(opens) == 0:
		return Block{}, fmt.Errorf("%w: looking for \"const %s = { ... };\"", ErrMarkerNotFound, identifier)
	case len(opens) > 1:
		lines := make([]string, len(opens))
		for i, o := range opens {
			lines[i] = fmt.Sprint(lineOf(content, o.start))
		}
		return Block{}, fmt.Errorf("%w: %s at lines %s", ErrAmbiguousMarker, identifier, strings.Join(lines, ", "))
	}

	open := opens[0]
	closeBrace, ok := matchBrace(content, open.brace)
	if !ok {
		return Block{}, fmt.Errorf("%w (declared at line %d)", ErrUnterminatedBlock, lineOf(content, open.start))
	}

	end := skipSpace(content, closeBrace+1)
	if end >= len(content) || content[end] != ';' {
		return Block{}, fmt.Errorf("%w (declared at line %d)", ErrUnterminatedBlock, lineOf(content, open.start))
	}

	return Block{
		Start:   open.start,
		End:     end + 1,
		Keyword: open.keyword,
		Indent:  indentOf(content, open.start),
		Line:    lineOf(content, open.start),
		Body:    content[open.brace+1 : closeBrace],
	}, nil
}

// findOpenMarkers returns every "<keyword> <identifier> = {" occurrence.
func findOpenMarkers(content, identifier string) []openMarker {
	var found []openMarker
	for from := 0; ; {
		idx := strings.Index(content[from:], identifier)
		if idx < 0 {
			return found
		}
		pos := from + idx
		from = pos + len(identifier)

		if m, ok := matchOpenAt(content, pos, identifier); ok {
			found = append(found, m)
		}
	}
}

func matchOpenAt(content string, pos int, identifier string) (openMarker, bool) {
	after := pos + len(identifier)
	if after < len(content) && isIdentChar(content[after]) {
		return openMarker{}, false
	}

	// backwards: at least one space, then a keyword on a word boundary
	kwEnd := pos
	for kwEnd > 0 && isSpace(content[kwEnd-1]) {
		kwEnd--
	}
	if kwEnd == pos {
		return openMarker{}, false
	}
	var keyword string
	for _, kw := range keywords {
		start := kwEnd - len(kw)
		if start < 0 || content[start:kwEnd] != kw {
			continue
		}
		if start > 0 && isIdentChar(content[start-1]) {
			continue
		}
		keyword = kw
		break
	}
	if keyword == "" {
		return openMarker{}, false
	}

	// forwards: "=" then "{"
	i := skipSpace(content, after)
	if i >= len(content) || content[i] != '=' {
		return openMarker{}, false
	}
	i = skipSpace(content, i+1)
	if i >= len(content) || content[i] != '{' {
		return openMarker{}, false
	}

	return openMarker{start: kwEnd - len(keyword), brace: i, keyword: keyword}, true
}

// matchBrace returns the index of the brace closing the one at open.
func matchBrace(content string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(content); i++ {
		switch c := content[i]; c {
		case '"', '\'', '`':
			i = skipString(content, i)
		case '/':
			if i+1 < len(content) {
				switch content[i+1] {
				case '/':
					nl := strings.IndexByte(content[i:], '\n')
					if nl < 0 {
						return 0, false
					}
					i += nl
				case '*':
					end := strings.Index(content[i+2:], "*/")
					if end < 0 {
						return 0, false
					}
					i += end + 3
				}
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// skipString returns the index of the quote closing the literal opened at i,
// or the last index when it never closes.
func skipString(content string, i int) int {
	quote := content[i]
	for j := i + 1; j < len(content); j++ {
		switch content[j] {
		case '\\':
			j++
		case quote:
			return j
		}
	}
	return len(content) - 1
}

func skipSpace(content string, i int) int {
	for i < len(content) && isSpace(content[i]) {
		i++
	}
	return i
}

func indentOf(content string, start int) string {
	lineStart := strings.LastIndexByte(content[:start], '\n') + 1
	indent := content[lineStart:start]
	if strings.TrimLeft(indent, " \t") != "" {
		return ""
	}
	return indent
}

func lineOf(content string, pos int) int {
	return strings.Count(content[:pos], "\n") + 1
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}
