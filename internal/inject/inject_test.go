package inject

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anjirai/weekly-flyers/internal/model"
)

const testPage = `<!DOCTYPE html>
<html>
<body>
    <script>
        const flyersByYear = {
            "2023": [
                {
                    filename: "old.jpg",
                    title: "curly { brace",
                    description: "closing }; inside a string",
                    date: "January 07, 2023"
                }
            ]
        };

        // render on load
        document.addEventListener('DOMContentLoaded', initYearTabs);
    </script>
</body>
</html>
`

func testCatalog() *model.Catalog {
	cfg := &model.FlyerConfig{
		TitleFormat: "Weekly Literary Meeting - Session {session}",
		Description: "Tamil short story analysis and discussion",
	}

	var c model.Catalog
	c.Put("2025", []model.Flyer{
		model.NewFlyer("1.jpg", "1", time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC), model.DateFromSchedule, cfg),
	})
	c.Put("2024", []model.Flyer{
		model.NewFlyer("1.jpg", "1", time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), model.DateFromSchedule, cfg),
		model.NewFlyer("2.jpg", "2", time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC), model.DateFromSchedule, cfg),
	})
	return &c
}

func writePage(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weeklyMeeting.html")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLocate(t *testing.T) {
	block, err := Locate(testPage, "flyersByYear")
	require.NoError(t, err)

	assert.Equal(t, "const", block.Keyword)
	assert.Equal(t, "        ", block.Indent)
	assert.Equal(t, 5, block.Line)
	assert.Equal(t, 1, block.Records())
	assert.True(t, strings.HasPrefix(testPage[block.Start:], "const flyersByYear = {"))
	assert.Equal(t, "};", testPage[block.End-2:block.End])
	assert.True(t, strings.HasPrefix(testPage[block.End:], "\n\n        // render on load"))
}

func TestLocate_Variants(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantErr  error
		wantKW   string
		wantBody string
	}{
		{
			name:     "let without spaces",
			content:  "let flyersByYear={};",
			wantKW:   "let",
			wantBody: "",
		},
		{
			name:     "var with newline before brace",
			content:  "var flyersByYear =\n{ \"2024\": [] }\n;",
			wantKW:   "var",
			wantBody: " \"2024\": [] ",
		},
		{
			name:     "braces in comments",
			content:  "const flyersByYear = { /* } */ a: 1, // }\n b: '}' };",
			wantKW:   "const",
			wantBody: " /* } */ a: 1, // }\n b: '}' ",
		},
		{
			name:     "escaped quote in string",
			content:  `const flyersByYear = { a: "x\"}" };`,
			wantKW:   "const",
			wantBody: ` a: "x\"}" `,
		},
		{
			name:     "nested objects",
			content:  "<script>const flyersByYear = { a: { b: {} } };</script>",
			wantKW:   "const",
			wantBody: " a: { b: {} } ",
		},
		{
			name:    "missing",
			content: "<script>const other = {};</script>",
			wantErr: ErrMarkerNotFound,
		},
		{
			name:    "longer identifier is not a match",
			content: "const flyersByYear2 = {};",
			wantErr: ErrMarkerNotFound,
		},
		{
			name:    "property assignment is not a declaration",
			content: "window.flyersByYear = {};",
			wantErr: ErrMarkerNotFound,
		},
		{
			name:    "keyword must stand alone",
			content: "myconst flyersByYear = {};",
			wantErr: ErrMarkerNotFound,
		},
		{
			name:    "usage only",
			content: "Object.keys(flyersByYear).sort();",
			wantErr: ErrMarkerNotFound,
		},
		{
			name:    "no semicolon",
			content: "const flyersByYear = { a: 1 }\nconsole.log(1);",
			wantErr: ErrUnterminatedBlock,
		},
		{
			name:    "unbalanced",
			content: "const flyersByYear = { a: { b: 1 };",
			wantErr: ErrUnterminatedBlock,
		},
		{
			name:    "declared twice",
			content: "const flyersByYear = {};\nlet flyersByYear = {};",
			wantErr: ErrAmbiguousMarker,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, err := Locate(tt.content, "flyersByYear")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKW, block.Keyword)
			assert.Equal(t, tt.wantBody, block.Body)
			assert.Equal(t, ";", tt.content[block.End-1:block.End])
		})
	}
}

func TestLocate_ErrorKindsAreDistinct(t *testing.T) {
	_, missing := Locate("nothing here", "flyersByYear")
	_, twice := Locate("const flyersByYear = {};\nconst flyersByYear = {};", "flyersByYear")

	assert.ErrorIs(t, missing, ErrMarkerNotFound)
	assert.NotErrorIs(t, missing, ErrAmbiguousMarker)
	assert.ErrorIs(t, twice, ErrAmbiguousMarker)
	assert.NotErrorIs(t, twice, ErrMarkerNotFound)
	assert.Contains(t, twice.Error(), "lines 1, 2")

	// an unterminated block is a kind of missing marker
	assert.True(t, errors.Is(ErrUnterminatedBlock, ErrMarkerNotFound))
}

func TestRender(t *testing.T) {
	got := Render(testCatalog(), "const", "flyersByYear", "")

	want := strings.Join([]string{
		`const flyersByYear = {`,
		`    "2024": [`,
		`        {`,
		`            filename: "1.jpg",`,
		`            title: "Weekly Literary Meeting - Session 1",`,
		`            description: "Tamil short story analysis and discussion",`,
		`            date: "January 06, 2024"`,
		`        },`,
		`        {`,
		`            filename: "2.jpg",`,
		`            title: "Weekly Literary Meeting - Session 2",`,
		`            description: "Tamil short story analysis and discussion",`,
		`            date: "January 13, 2024"`,
		`        }`,
		`    ],`,
		`    "2025": [`,
		`        {`,
		`            filename: "1.jpg",`,
		`            title: "Weekly Literary Meeting - Session 1",`,
		`            description: "Tamil short story analysis and discussion",`,
		`            date: "January 04, 2025"`,
		`        }`,
		`    ]`,
		`};`,
	}, "\n")

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_Indent(t *testing.T) {
	indent := "\t\t"
	lines := strings.Split(Render(testCatalog(), "let", "flyersByYear", indent), "\n")

	assert.Equal(t, "let flyersByYear = {", lines[0])
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, indent), "line %q lacks indent", line)
	}
	assert.Equal(t, indent+"};", lines[len(lines)-1])
}

func TestRender_Empty(t *testing.T) {
	got := Render(&model.Catalog{}, "const", "flyersByYear", "  ")
	assert.Equal(t, "const flyersByYear = {\n  };", got)
}

func TestQuote(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "1.jpg", `"1.jpg"`},
		{"quotes and backslash", `a"b\c`, `"a\"b\\c"`},
		{"html stays literal", "<b>&</b>", `"<b>&</b>"`},
		{"control characters", "a\nb\tc\x01", `"a\nb\tc\u0001"`},
		{"delete", "\x7f", `"\u007f"`},
		{"tamil", "அ.jpg", `"\u0b85.jpg"`},
		{"astral", "😀", `"\ud83d\ude00"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Quote(tt.input))
		})
	}
}

func TestInject_Idempotent(t *testing.T) {
	path := writePage(t, testPage)
	inj := NewInjector("flyersByYear")

	first, err := inj.Inject(context.Background(), path, testCatalog())
	require.NoError(t, err)
	assert.True(t, first.Changed)
	assert.True(t, first.Written)

	afterFirst, err := os.ReadFile(path)
	require.NoError(t, err)

	second, err := inj.Inject(context.Background(), path, testCatalog())
	require.NoError(t, err)
	assert.False(t, second.Changed)
	assert.False(t, second.Written)
	assert.Equal(t, first.Code, second.Code)

	afterSecond, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(afterFirst), string(afterSecond))

	page := string(afterSecond)
	assert.Equal(t, 1, strings.Count(page, "const flyersByYear = {"))
	assert.Contains(t, page, "        const flyersByYear = {\n            \"2024\": [\n")
	assert.Contains(t, page, "\n        };\n\n        // render on load")
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>\n<html>\n<body>\n    <script>\n"))
	assert.True(t, strings.HasSuffix(page, "    </script>\n</body>\n</html>\n"))
	assert.NotContains(t, page, "old.jpg")
}

func TestInject_KeepsCRLF(t *testing.T) {
	crlf := strings.ReplaceAll(testPage, "\n", "\r\n")
	path := writePage(t, crlf)
	inj := NewInjector("flyersByYear")

	first, err := inj.Inject(context.Background(), path, testCatalog())
	require.NoError(t, err)
	require.True(t, first.Written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(data)
	assert.Equal(t, strings.Count(page, "\n"), strings.Count(page, "\r\n"), "bare LF in CRLF page")
	assert.Contains(t, page, "        const flyersByYear = {\r\n            \"2024\": [\r\n")
	assert.Contains(t, page, "\r\n        };\r\n\r\n        // render on load")

	for _, line := range first.Lines() {
		assert.NotContains(t, line, "\r")
	}
	assert.Equal(t, 24, len(first.Lines()))

	second, err := inj.Inject(context.Background(), path, testCatalog())
	require.NoError(t, err)
	assert.False(t, second.Changed)
}

func TestInject_DryRun(t *testing.T) {
	path := writePage(t, testPage)

	res, err := NewInjector("flyersByYear").WithDryRun(true).Inject(context.Background(), path, testCatalog())
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.False(t, res.Written)
	assert.Equal(t, 24, len(res.Lines()))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, testPage, string(got))
}

func TestInject_TargetNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.html")

	_, err := NewInjector("flyersByYear").Inject(context.Background(), path, testCatalog())
	assert.ErrorIs(t, err, ErrTargetNotFound)
}

func TestInject_MarkerErrorsLeaveFileUntouched(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"missing", "<script>const other = {};</script>", ErrMarkerNotFound},
		{"twice", "<script>const flyersByYear = {};\nconst flyersByYear = {};</script>", ErrAmbiguousMarker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePage(t, tt.content)

			_, err := NewInjector("flyersByYear").Inject(context.Background(), path, testCatalog())
			assert.ErrorIs(t, err, tt.wantErr)

			got, readErr := os.ReadFile(path)
			require.NoError(t, readErr)
			assert.Equal(t, tt.content, string(got))
		})
	}
}
