package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/hyprmon/internal/display"
	"github.com/bnema/hyprmon/internal/hyprconf"
	"github.com/bnema/hyprmon/internal/logger"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	noticeDuration = 4 * time.Second
	panelWidth     = 38
)

// Saver persists the arrangement
type Saver func(monitors []*display.Monitor) error

// Loader merges the persisted arrangement back into monitors
type Loader func(monitors []*display.Monitor) (hyprconf.Report, error)

// EditorOptions configures an EditorModel
type EditorOptions struct {
	Step       int
	FineStep   int
	ScaleStep  float64
	ConfigPath string // shown in the header
	Save       Saver
	Load       Loader
	Styles     *Styles
}

type noticeTickMsg struct{}

// EditorModel is the bubbletea model of the layout editor.
// It owns its monitor set for the lifetime of the program.
type EditorModel struct {
	monitors []*display.Monitor
	selected int
	opts     EditorOptions
	styles   Styles
	keys     KeyMap
	help     help.Model

	width  int
	height int

	message       string
	messageType   string // "info", "error", "success", "warning"
	messageExpiry time.Time

	dirty       bool
	confirmQuit bool
	now         func() time.Time
}

// NewEditorModel creates an editor over monitors
func NewEditorModel(monitors []*display.Monitor, opts EditorOptions) *EditorModel {
	if opts.Step <= 0 {
		opts.Step = 10
	}
	if opts.FineStep <= 0 {
		opts.FineStep = 1
	}
	if opts.ScaleStep <= 0 {
		opts.ScaleStep = 0.25
	}
	styles := NewStyles(nil)
	if opts.Styles != nil {
		styles = *opts.Styles
	}

	m := &EditorModel{
		monitors: monitors,
		opts:     opts,
		styles:   styles,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		width:    100,
		height:   30,
		now:      time.Now,
	}
	if len(monitors) == 0 {
		m.selected = -1
	}
	return m
}

// Monitors returns the set being edited
func (m *EditorModel) Monitors() []*display.Monitor {
	return m.monitors
}

// Selected returns the selected monitor, or nil
func (m *EditorModel) Selected() *display.Monitor {
	if m.selected < 0 || m.selected >= len(m.monitors) {
		return nil
	}
	return m.monitors[m.selected]
}

// Dirty reports unsaved changes
func (m *EditorModel) Dirty() bool {
	return m.dirty
}

// Init implements tea.Model
func (m *EditorModel) Init() tea.Cmd {
	if len(m.monitors) == 0 {
		return m.SetMessage("warning", "No monitors discovered")
	}
	return nil
}

// SetMessage shows a transient notice and schedules its expiry
func (m *EditorModel) SetMessage(kind, text string) tea.Cmd {
	m.message = text
	m.messageType = kind
	m.messageExpiry = m.now().Add(noticeDuration)
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg { return noticeTickMsg{} })
}

// Update implements tea.Model
func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if !key.Matches(msg, m.keys.Quit) {
			m.confirmQuit = false
		}
		var quit bool
		cmd, quit = m.handleKey(msg)
		if quit {
			return m, tea.Quit
		}
	}

	// Clear expired messages
	if !m.messageExpiry.IsZero() && m.now().After(m.messageExpiry) {
		m.message = ""
		m.messageType = ""
		m.messageExpiry = time.Time{}
	}

	return m, cmd
}

func (m *EditorModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.dirty && !m.confirmQuit {
			m.confirmQuit = true
			return m.SetMessage("warning", "Unsaved changes - press q again to quit"), false
		}
		return nil, true

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, false

	case key.Matches(msg, m.keys.Next):
		m.cycleSelection(1)
		return nil, false

	case key.Matches(msg, m.keys.Prev):
		m.cycleSelection(-1)
		return nil, false

	case key.Matches(msg, m.keys.Save):
		return m.save(), false

	case key.Matches(msg, m.keys.Reload):
		return m.reload(), false

	case key.Matches(msg, m.keys.Arrange):
		m.arrangeRow()
		return m.SetMessage("info", "Arranged enabled monitors left to right"), false
	}

	sel := m.Selected()
	if sel == nil {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		m.move(sel, -m.opts.Step, 0)
	case key.Matches(msg, m.keys.Right):
		m.move(sel, m.opts.Step, 0)
	case key.Matches(msg, m.keys.Up):
		m.move(sel, 0, -m.opts.Step)
	case key.Matches(msg, m.keys.Down):
		m.move(sel, 0, m.opts.Step)
	case key.Matches(msg, m.keys.FineLeft):
		m.move(sel, -m.opts.FineStep, 0)
	case key.Matches(msg, m.keys.FineRight):
		m.move(sel, m.opts.FineStep, 0)
	case key.Matches(msg, m.keys.FineUp):
		m.move(sel, 0, -m.opts.FineStep)
	case key.Matches(msg, m.keys.FineDown):
		m.move(sel, 0, m.opts.FineStep)

	case key.Matches(msg, m.keys.NextMode):
		return m.stepMode(sel, 1), false
	case key.Matches(msg, m.keys.PrevMode):
		return m.stepMode(sel, -1), false

	case key.Matches(msg, m.keys.Rotate):
		sel.Rotate()
		m.dirty = true

	case key.Matches(msg, m.keys.ScaleUp):
		return m.stepScale(sel, 1), false
	case key.Matches(msg, m.keys.ScaleDown):
		return m.stepScale(sel, -1), false

	case key.Matches(msg, m.keys.Toggle):
		sel.ToggleEnabled()
		m.dirty = true
		if sel.Enabled {
			return m.SetMessage("info", sel.Name+" enabled"), false
		}
		return m.SetMessage("info", sel.Name+" disabled"), false
	}
	return nil, false
}

func (m *EditorModel) cycleSelection(dir int) {
	n := len(m.monitors)
	if n == 0 {
		return
	}
	m.selected = ((m.selected+dir)%n + n) % n
}

func (m *EditorModel) move(sel *display.Monitor, dx, dy int) {
	if sel.Position == nil {
		return
	}
	if dx != 0 {
		sel.MoveHorizontal(dx)
	}
	if dy != 0 {
		sel.MoveVertical(dy)
	}
	m.dirty = true
}

func (m *EditorModel) stepMode(sel *display.Monitor, dir int) tea.Cmd {
	n := len(sel.Modes)
	if n == 0 {
		return m.SetMessage("warning", sel.Name+" reports no modes")
	}
	index := sel.CurrentModeIndex()
	if index < 0 {
		index = 0
		for i := range sel.Modes {
			if sel.Modes[i].Preferred {
				index = i
				break
			}
		}
	}
	index = ((index+dir)%n + n) % n
	if err := sel.SetCurrentResolution(index); err != nil {
		return m.SetMessage("error", err.Error())
	}
	m.dirty = true
	return nil
}

func (m *EditorModel) stepScale(sel *display.Monitor, dir int) tea.Cmd {
	step := m.opts.ScaleStep
	next := sel.ScaleOrDefault() + float64(dir)*step
	// snap to multiples of step
	next = math.Round(next/step) * step
	if err := sel.SetScale(next); err != nil {
		return m.SetMessage("error", err.Error())
	}
	m.dirty = true
	return nil
}

// arrangeRow lines the enabled monitors up left to right at y=0, in list order
func (m *EditorModel) arrangeRow() {
	x := 0
	for _, mon := range m.monitors {
		if !mon.Enabled {
			continue
		}
		_, _, w, _ := mon.LogicalGeometry()
		mon.Position = &display.Position{X: x, Y: 0}
		x += int(math.Round(w))
	}
	m.dirty = true
}

func (m *EditorModel) save() tea.Cmd {
	if m.opts.Save == nil {
		return m.SetMessage("warning", "Saving is not available in this session")
	}
	if err := m.opts.Save(m.monitors); err != nil {
		logger.Errorf("Failed to save monitor config: %v", err)
		return m.SetMessage("error", "Save failed: "+err.Error())
	}
	m.dirty = false
	return m.SetMessage("success", "Saved to "+m.opts.ConfigPath)
}

func (m *EditorModel) reload() tea.Cmd {
	if m.opts.Load == nil {
		return m.SetMessage("warning", "Reloading is not available in this session")
	}
	report, err := m.opts.Load(m.monitors)
	if err != nil {
		logger.Warnf("Failed to reload monitor config: %v", err)
		return m.SetMessage("error", "Reload failed: "+err.Error())
	}
	m.dirty = false
	if len(report.Skipped) > 0 {
		return m.SetMessage("warning", fmt.Sprintf("Reloaded %d directive(s), skipped %d", len(report.Applied), len(report.Skipped)))
	}
	return m.SetMessage("success", fmt.Sprintf("Reloaded %d directive(s)", len(report.Applied)))
}

// View implements tea.Model
func (m *EditorModel) View() string {
	s := m.styles

	title := s.Title.Render("hyprmon")
	path := s.Subtle.Render(m.opts.ConfigPath)
	if m.dirty {
		path += s.Warning.Render(" (modified)")
	}
	header := title + " " + path

	canvas, warn := m.canvas()

	helpView := m.help.View(m.keys)
	status := ""
	switch {
	case m.message != "":
		status = s.FormatStatusLine(m.messageType, m.message)
	case warn != "":
		status = s.FormatStatusLine("warning", warn)
	}

	reserved := lipgloss.Height(header) + lipgloss.Height(helpView) + 1
	if status != "" {
		reserved++
	}
	canvasCols := m.width - panelWidth - 4
	canvasRows := m.height - reserved - 2
	if canvasCols < 10 {
		canvasCols = 10
	}
	if canvasRows < 4 {
		canvasRows = 4
	}

	layout := s.Box.Render(renderCanvas(s, m.monitors, m.selected, canvas, canvasCols, canvasRows))
	panel := s.Panel.Width(panelWidth).Render(m.panelView())

	parts := []string{header, lipgloss.JoinHorizontal(lipgloss.Top, layout, panel)}
	if status != "" {
		parts = append(parts, status)
	}
	parts = append(parts, helpView)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// canvas computes the strict canvas, falling back to the renderable
// monitors when an enabled one is incomplete
func (m *EditorModel) canvas() (display.Canvas, string) {
	canvas, err := display.ComputeCanvas(m.monitors)
	if err == nil {
		return canvas, ""
	}

	renderable := make([]*display.Monitor, 0, len(m.monitors))
	for _, mon := range m.monitors {
		if !mon.Enabled {
			continue
		}
		if _, ferr := display.EffectiveFootprint(mon); ferr == nil {
			renderable = append(renderable, mon)
		}
	}
	// Every monitor left has a complete footprint
	canvas, _ = display.ComputeCanvas(renderable)
	return canvas, err.Error()
}

func (m *EditorModel) panelView() string {
	s := m.styles
	if len(m.monitors) == 0 {
		return s.Muted.Render("No monitors")
	}

	var b strings.Builder
	for i, mon := range m.monitors {
		if i > 0 {
			b.WriteString("\n")
		}
		indicator := s.Success.Render(IconEnabled)
		if !mon.Enabled {
			indicator = s.Muted.Render(IconDisabled)
		}
		name := s.Text.Render(mon.Name)
		if i == m.selected {
			name = s.Selected.Render("▸ " + mon.Name)
		}
		b.WriteString(indicator + " " + name + "\n")
		for _, line := range Describe(mon) {
			b.WriteString("  " + s.Subtle.Render(line) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Describe is the per-monitor detail block shared by the editor and `list`
func Describe(mon *display.Monitor) []string {
	var lines []string
	if mon.Description != nil && *mon.Description != "" {
		lines = append(lines, *mon.Description)
	}
	if mode := mon.EffectiveMode(); mode != nil {
		lines = append(lines, "mode  "+mode.String())
	} else {
		lines = append(lines, "mode  none")
	}
	if !mon.Enabled {
		return append(lines, "disabled")
	}
	if mon.Position != nil {
		lines = append(lines, fmt.Sprintf("pos   %d,%d", mon.Position.X, mon.Position.Y))
	} else {
		lines = append(lines, "pos   unset")
	}
	lines = append(lines, fmt.Sprintf("scale %s  rot %s", display.FormatFloat(mon.ScaleOrDefault()), mon.Rotation()))
	return lines
}
