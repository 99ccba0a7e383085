// Package tui provides a Bubble Tea terminal user interface for the flyer
// generator.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/anjirai/weekly-flyers/internal/config"
	"github.com/anjirai/weekly-flyers/internal/generate"
	"github.com/anjirai/weekly-flyers/internal/inject"
	"github.com/anjirai/weekly-flyers/internal/model"
)

// maxLogs is how many progress lines stay on screen.
const maxLogs = 12

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	yearStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateScanning
	StatePreview
	StateWriting
	StateComplete
	StateError
)

// errCancelled is shown when the operator aborts a running step.
var errCancelled = errors.New("cancelled by user")

// Message types
type (
	// ScanDoneMsg is sent when the folder scan finishes. Run identifies the
	// scan that produced it.
	ScanDoneMsg struct {
		Run     int
		Catalog *model.Catalog
		Events  []model.ProgressEvent
		Err     error
	}

	// InjectDoneMsg is sent when the page has been rewritten.
	InjectDoneMsg struct {
		Run    int
		Result *inject.Result
		Events []model.ProgressEvent
		Err    error
	}
)

// eventLog collects generator progress inside a command. Commands run one
// at a time, so it needs no locking.
type eventLog struct {
	events []model.ProgressEvent
}

func (l *eventLog) add(e model.ProgressEvent) { l.events = append(l.events, e) }

func (l *eventLog) drain() []model.ProgressEvent {
	out := l.events
	l.events = nil
	return out
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	settings  *config.Settings
	logger    *zap.Logger
	logs      []model.ProgressEvent
	err       error

	ctx    context.Context
	cancel context.CancelFunc

	// run is bumped on every scan and reset; results from older runs are
	// dropped.
	run     int
	gen     *generate.Generator
	events  *eventLog
	catalog *model.Catalog
	result  *inject.Result

	// Options
	dryRun  bool
	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model. The root path field starts with the
// configured folder.
func NewModel(settings *config.Settings, logger *zap.Logger) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = settings.RootPath
	ti.SetValue(settings.RootPath)
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		settings:  settings,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
		events:    &eventLog{},
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			switch m.state {
			case StateInput:
				return m, tea.Quit
			case StatePreview:
				m.state = StateInput
				m.catalog = nil
				m.textInput.Focus()
				return m, nil
			case StateScanning, StateWriting:
				m.cancel()
				m.state = StateError
				m.err = errCancelled
			}

		case "tab":
			if m.state == StateInput {
				if m.textInput.Focused() {
					m.textInput.Blur()
				} else {
					m.textInput.Focus()
				}
				return m, nil
			}

		case "enter":
			switch m.state {
			case StateInput:
				if strings.TrimSpace(m.textInput.Value()) != "" {
					m.startScan()
					return m, tea.Batch(m.scanCmd(), m.spinner.Tick)
				}
			case StatePreview:
				m.state = StateWriting
				return m, tea.Batch(m.injectCmd(), m.spinner.Tick)
			}

		case "n":
			if m.state == StateInput && !m.textInput.Focused() {
				m.dryRun = !m.dryRun
				return m, nil
			}

		case "v":
			if m.state == StateInput && !m.textInput.Focused() {
				m.verbose = !m.verbose
				return m, nil
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m.reset()
				return m, textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ScanDoneMsg:
		if msg.Run != m.run || m.state != StateScanning {
			return m, nil
		}
		m.appendLogs(msg.Events)
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.catalog = msg.Catalog
			m.state = StatePreview
		}

	case InjectDoneMsg:
		if msg.Run != m.run || m.state != StateWriting {
			return m, nil
		}
		m.appendLogs(msg.Events)
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.result = msg.Result
			m.state = StateComplete
		}
	}

	if m.state == StateInput && m.textInput.Focused() {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// startScan builds a generator for the entered root and the chosen options.
func (m *Model) startScan() {
	settings := *m.settings
	settings.RootPath = strings.TrimSpace(m.textInput.Value())

	m.run++
	m.logs = nil
	m.err = nil
	m.events = &eventLog{}
	m.gen = generate.NewGenerator(&settings, m.logger, m.events.add, generate.WithDryRun(m.dryRun))
	m.state = StateScanning
	m.textInput.Blur()
}

func (m *Model) reset() {
	m.run++
	m.state = StateInput
	m.logs = nil
	m.err = nil
	m.gen = nil
	m.catalog = nil
	m.result = nil
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.textInput.Focus()
}

func (m *Model) appendLogs(events []model.ProgressEvent) {
	for _, e := range events {
		if e.Level == model.LevelVerbose && !m.verbose {
			continue
		}
		m.logs = append(m.logs, e)
	}
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// scanCmd scans the folder tree in the background.
func (m Model) scanCmd() tea.Cmd {
	run, gen, events, ctx := m.run, m.gen, m.events, m.ctx
	return func() tea.Msg {
		catalog, err := gen.Scan(ctx)
		return ScanDoneMsg{Run: run, Catalog: catalog, Events: events.drain(), Err: err}
	}
}

// injectCmd writes the previewed catalog into the page.
func (m Model) injectCmd() tea.Cmd {
	run, gen, events, ctx, catalog := m.run, m.gen, m.events, m.ctx, m.catalog
	return func() tea.Msg {
		res, err := gen.Inject(ctx, catalog)
		return InjectDoneMsg{Run: run, Result: res, Events: events.drain(), Err: err}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("Weekly Flyers"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Publish the flyer gallery for the weekly meeting page"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateScanning:
		b.WriteString(m.viewWorking("Scanning for flyers..."))
	case StatePreview:
		b.WriteString(m.viewPreview())
	case StateWriting:
		b.WriteString(m.viewWorking("Updating page..."))
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Flyer folder:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Dry run, do not write the page (n)\n", checkbox(m.dryRun)))
	b.WriteString(fmt.Sprintf("  %s Verbose output (v)\n", checkbox(m.verbose)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Page: %s", m.settings.HTMLPath)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewWorking(title string) string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewPreview() string {
	var b strings.Builder

	if m.catalog != nil {
		b.WriteString(successStyle.Render(fmt.Sprintf("Found %d flyer(s) in %d year(s):", m.catalog.Total(), len(m.catalog.Years()))))
		b.WriteString("\n")
		for _, bucket := range m.catalog.Buckets() {
			line := fmt.Sprintf("  %s  %d session(s)", bucket.Year, len(bucket.Flyers))
			if n := len(bucket.Flyers); n > 0 {
				line += fmt.Sprintf("  %s .. %s", bucket.Flyers[0].Date, bucket.Flyers[n-1].Date)
			}
			b.WriteString(yearStyle.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.dryRun {
		b.WriteString(warningStyle.Render("Dry run: the page will not be modified"))
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	status := "Page updated"
	switch {
	case m.result == nil:
	case !m.result.Changed:
		status = "Page already up to date"
	case !m.result.Written:
		status = "Dry run, page not modified"
	}

	var total, years int
	if m.catalog != nil {
		total, years = m.catalog.Total(), len(m.catalog.Years())
	}

	box := boxStyle.Render(fmt.Sprintf(
		"%s\n\n"+
			"Years: %d\n"+
			"Flyers: %d\n"+
			"Page: %s",
		status,
		years,
		total,
		m.settings.HTMLPath,
	))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case model.LevelError:
			style = errorStyle
			prefix = "✗"
		case model.LevelWarning:
			style = warningStyle
			prefix = "!"
		case model.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case model.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		if m.textInput.Focused() {
			return "enter: scan • tab: options • esc: quit"
		}
		return "enter: scan • n: dry run • v: verbose • tab: edit path • esc: quit"
	case StateScanning, StateWriting:
		return "esc: cancel"
	case StatePreview:
		return "enter: write page • esc: back"
	case StateComplete, StateError:
		return "r: start over • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(settings *config.Settings, logger *zap.Logger) error {
	p := tea.NewProgram(NewModel(settings, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
