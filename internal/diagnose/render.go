package diagnose

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	ioutils "github.com/anjirai/weekly-flyers/internal/io"
	"github.com/anjirai/weekly-flyers/internal/inject"
)

// maxRootImages is how many stray root images are listed by name.
const maxRootImages = 10

type styles struct {
	title   lipgloss.Style
	ok      lipgloss.Style
	bad     lipgloss.Style
	warning lipgloss.Style
	dim     lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4")),
		ok:      r.NewStyle().Foreground(lipgloss.Color("#95E1A3")),
		bad:     r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		warning: r.NewStyle().Foreground(lipgloss.Color("#FFE66D")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("#6C757D")),
	}
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

// Render writes report to w in the operator's format.
func Render(w io.Writer, report *Report) error {
	st := newStyles(w)
	p := &printer{w: w}
	rule := strings.Repeat("=", 70)
	sep := string(filepath.Separator)

	p.line("%s", rule)
	p.line("%s", st.title.Render("  Anjirai Literary Circle - Flyer Diagnostic Tool"))
	p.line("%s", rule)
	p.line("")

	if !report.Exists {
		p.line("%s", st.bad.Render("[X] Base folder not found: "+report.Root))
		return p.err
	}

	p.line("%s", st.ok.Render("[OK] Base folder exists: "+report.Root))
	p.line("")

	p.line("Contents of base folder:")
	for _, e := range report.Entries {
		if e.Dir {
			p.line("  [DIR] %s/", e.Name)
		} else {
			p.line("  [FILE] %s", e.Name)
		}
	}
	p.line("")

	if len(report.YearFolders) > 0 {
		years := make([]string, len(report.YearFolders))
		for i, f := range report.YearFolders {
			years[i] = f.Year
		}
		p.line("%s", st.ok.Render(fmt.Sprintf("[OK] Found %d year folder(s): %s", len(years), strings.Join(years, ", "))))
		p.line("")

		for _, f := range report.YearFolders {
			renderYear(p, st, f)
		}
	} else {
		p.line("%s", st.bad.Render("[X] No year folders found (folders named 2024, 2025, etc.)"))
		p.line("")
		p.line("[TIP] Expected structure:")
		p.line("   %s%s", strings.TrimSuffix(report.Root, sep), sep)
		p.line("   +-- 2024%s", sep)
		p.line("   |   +-- 1.jpg")
		p.line("   |   +-- 2.jpg")
		p.line("   |   +-- ...")
		p.line("   +-- 2025%s", sep)
		p.line("       +-- 1.jpg")
		p.line("       +-- ...")
		p.line("")

		if n := len(report.RootImages); n > 0 {
			p.line("%s", st.warning.Render(fmt.Sprintf("[WARNING] Found %d image(s) in base folder (not in year folders):", n)))
			for i, name := range report.RootImages {
				if i == maxRootImages {
					p.line("   ... and %d more", n-maxRootImages)
					break
				}
				p.line("   [IMG] %s", name)
			}
		}
	}

	if report.Target != nil {
		p.line("")
		renderTarget(p, st, report.Target)
	}

	p.line("")
	p.line("%s", rule)
	p.line("")
	p.line("Next steps:")
	p.line("1. Make sure images are in year folders (2024, 2025, etc.)")
	p.line("2. Run: flyers generate")
	p.line("3. Refresh your browser")

	return p.err
}

func renderYear(p *printer, st styles, f YearFolder) {
	p.line("%s/ folder contents:", f.Year)

	if len(f.Images) == 0 {
		p.line("  %s", st.bad.Render("[X] No image files found!"))
	} else {
		p.line("  %s", st.ok.Render(fmt.Sprintf("[OK] %d image file(s):", len(f.Images))))
		for _, img := range f.Images {
			detail := ioutils.FormatSize(img.Size)
			if img.ProbeErr == nil {
				detail += ", " + img.Info.String()
			} else {
				detail += ", " + st.warning.Render("unreadable")
			}
			p.line("    [IMG] %s (%s)", runewidth.FillRight(img.Name, 30), detail)
		}
	}

	if len(f.Others) > 0 {
		p.line("  %s", st.warning.Render(fmt.Sprintf("[WARNING] %d other file(s):", len(f.Others))))
		for _, name := range f.Others {
			p.line("    [FILE] %s", name)
		}
	}
	p.line("")
}

func renderTarget(p *printer, st styles, t *TargetCheck) {
	if !t.Exists {
		p.line("%s", st.bad.Render("[X] Page not found: "+t.Path))
		return
	}
	p.line("%s", st.ok.Render("[OK] Page exists: "+t.Path))
	p.line("   %d script element(s) mention the data block", t.Scripts)

	switch {
	case t.Block != nil:
		p.line("%s", st.ok.Render(fmt.Sprintf("[OK] Data block at line %d (%s, %d record(s))", t.Block.Line, t.Block.Keyword, t.Block.Records())))
	case errors.Is(t.LocateErr, inject.ErrAmbiguousMarker):
		p.line("%s", st.bad.Render("[X] "+t.LocateErr.Error()))
	case t.LocateErr != nil:
		p.line("%s", st.bad.Render("[X] "+t.LocateErr.Error()))
		p.line("%s", st.dim.Render(fmt.Sprintf("   Add an empty block to the page, e.g. const %s = {};", t.Identifier)))
	}
}
