package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/anjirai/weekly-flyers/internal/model"
)

// progressPrinter prints operator messages with a prefix per level.
type progressPrinter struct {
	w       io.Writer
	verbose bool

	info    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	dim     lipgloss.Style
}

func newProgressPrinter(w io.Writer, verbose bool) *progressPrinter {
	r := lipgloss.NewRenderer(w)
	return &progressPrinter{
		w:       w,
		verbose: verbose,
		info:    r.NewStyle().Foreground(lipgloss.Color("#A8DADC")),
		success: r.NewStyle().Foreground(lipgloss.Color("#95E1A3")),
		warning: r.NewStyle().Foreground(lipgloss.Color("#FFE66D")),
		err:     r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("#6C757D")),
	}
}

func (p *progressPrinter) handle(event model.ProgressEvent) {
	if event.Level == model.LevelVerbose && !p.verbose {
		return
	}

	var line string
	switch event.Level {
	case model.LevelError:
		line = p.err.Render("[X] " + event.Message)
	case model.LevelWarning:
		line = p.warning.Render("[WARNING] " + event.Message)
	case model.LevelSuccess:
		line = p.success.Render("[OK] " + event.Message)
	case model.LevelInfo:
		line = p.info.Render(event.Message)
	default:
		line = p.dim.Render("   " + event.Message)
	}
	fmt.Fprintln(p.w, line)
}
