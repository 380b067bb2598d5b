// Package hyprconf reads and writes Hyprland monitor directives.
//
// A directive line looks like
//
//	monitor = DP-1, 2560x1440@144, 1920x0, 1.25, transform, 1
//	monitor = HDMI-A-1, disabled
//
// Parsing is a best-effort merge into monitors that discovery already found:
// unknown names and malformed fields are skipped, never created or fatal.
package hyprconf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/bnema/hyprmon/internal/display"
	"github.com/bnema/hyprmon/internal/logger"
)

const (
	Keyword          = "monitor"
	DisabledMarker   = "disabled"
	TransformKeyword = "transform"
)

// FormatLine renders one monitor as a directive.
// An enabled monitor must have an effective mode and a position.
func FormatLine(m *display.Monitor) (string, error) {
	if !m.Enabled {
		return fmt.Sprintf("%s = %s, %s", Keyword, m.Name, DisabledMarker), nil
	}

	mode := m.EffectiveMode()
	if mode == nil {
		return "", fmt.Errorf("monitor %s: %w", m.Name, display.ErrNoResolution)
	}
	if m.Position == nil {
		return "", fmt.Errorf("monitor %s: %w", m.Name, display.ErrNoPosition)
	}

	return fmt.Sprintf("%s = %s, %dx%d@%s, %dx%d, %s, %s, %d",
		Keyword, m.Name,
		mode.Width, mode.Height, display.FormatFloat(mode.Refresh),
		m.Position.X, m.Position.Y,
		display.FormatFloat(m.ScaleOrDefault()),
		TransformKeyword, m.Rotation().Hyprland(),
	), nil
}

// Format renders every monitor, one line each, in the given order
func Format(monitors []*display.Monitor) (string, error) {
	var b strings.Builder
	if err := Write(&b, monitors); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Write emits one directive per monitor. Nothing is written if any monitor fails to format.
func Write(w io.Writer, monitors []*display.Monitor) error {
	lines := make([]string, 0, len(monitors))
	for _, m := range monitors {
		line, err := FormatLine(m)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write directive: %w", err)
		}
	}
	return nil
}

// Skip records a directive line that was ignored, or a field that was left unchanged
type Skip struct {
	Line   int
	Text   string
	Reason string
}

// Report summarizes a parse pass
type Report struct {
	Applied []string // monitor names touched, in file order
	Skipped []Skip
}

func (r *Report) skip(line int, text, format string, args ...interface{}) {
	r.Skipped = append(r.Skipped, Skip{Line: line, Text: text, Reason: fmt.Sprintf(format, args...)})
}

// Log writes the report at debug level
func (r Report) Log() {
	logger.Debugf("Applied %d monitor directive(s)", len(r.Applied))
	for _, s := range r.Skipped {
		logger.Debugf("Line %d skipped (%s): %s", s.Line, s.Reason, s.Text)
	}
}

// ApplyString is Apply over in-memory text
func ApplyString(content string, monitors []*display.Monitor) Report {
	return Apply(strings.NewReader(content), monitors)
}

// Apply merges directives into monitors by name and never fails.
// Lines may be of any length. Read errors end the pass early and are
// recorded in the report.
func Apply(r io.Reader, monitors []*display.Monitor) Report {
	var report Report
	reader := bufio.NewReader(r)

	lineNo := 0
	for {
		raw, err := reader.ReadString('\n')
		if raw != "" {
			lineNo++
			applyLine(lineNo, strings.TrimRight(raw, "\r\n"), monitors, &report)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				report.skip(lineNo+1, "", "read error: %v", err)
			}
			break
		}
	}
	return report
}

// isDirective reports whether line uses the monitor keyword itself,
// not a longer one such as monitorv2
func isDirective(line string) bool {
	if !strings.HasPrefix(line, Keyword) {
		return false
	}
	rest := line[len(Keyword):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '='
}

func applyLine(lineNo int, raw string, monitors []*display.Monitor, report *Report) {
	line := strings.TrimSpace(raw)
	if !isDirective(line) {
		return
	}

	_, rest, ok := strings.Cut(line, "=")
	if !ok {
		report.skip(lineNo, raw, "missing '='")
		return
	}
	fields := strings.Split(rest, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) < 2 {
		report.skip(lineNo, raw, "expected at least 2 fields, got %d", len(fields))
		return
	}

	m := display.FindMonitor(monitors, fields[0])
	if m == nil {
		report.skip(lineNo, raw, "unknown monitor %q", fields[0])
		return
	}
	report.Applied = append(report.Applied, m.Name)

	if fields[1] == DisabledMarker {
		m.Enabled = false
		return
	}
	m.Enabled = true

	if index, ok := ResolveMode(m, fields[1]); ok {
		// index comes from the mode list, so this cannot be out of range
		_ = m.SetCurrentResolution(index)
	} else {
		report.skip(lineNo, raw, "resolution %q not offered by %s", fields[1], m.Name)
	}

	if len(fields) > 2 {
		if pos, ok := ParsePosition(fields[2]); ok {
			m.Position = &pos
		} else {
			report.skip(lineNo, raw, "invalid position %q", fields[2])
		}
	}

	if len(fields) > 3 {
		if scale, ok := ParseScale(fields[3]); ok {
			m.Scale = &scale
		} else {
			report.skip(lineNo, raw, "invalid scale %q", fields[3])
		}
	}

	if len(fields) > 5 && fields[4] == TransformKeyword {
		if v, err := strconv.Atoi(fields[5]); err == nil {
			tag := display.RotationFromHyprland(v).Transform()
			m.Transform = &tag
		} else {
			report.skip(lineNo, raw, "invalid transform %q", fields[5])
		}
	}
}

// ResolveMode finds the mode a resolution field selects: an exact
// WIDTHxHEIGHT@REFRESH or WIDTHxHEIGHT match, or "preferred"/"highres"
// for the first preferred mode.
func ResolveMode(m *display.Monitor, field string) (int, bool) {
	for i, mode := range m.Modes {
		full := fmt.Sprintf("%dx%d@%s", mode.Width, mode.Height, display.FormatFloat(mode.Refresh))
		short := fmt.Sprintf("%dx%d", mode.Width, mode.Height)
		if field == full || field == short {
			return i, true
		}
	}
	if field == "preferred" || field == "highres" {
		for i, mode := range m.Modes {
			if mode.Preferred {
				return i, true
			}
		}
	}
	return -1, false
}

// ParsePosition reads "XxY". Both halves must be integers.
func ParsePosition(field string) (display.Position, bool) {
	parts := strings.Split(field, "x")
	if len(parts) != 2 {
		return display.Position{}, false
	}
	x, err := strconv.Atoi(parts[0])
	if err != nil {
		return display.Position{}, false
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return display.Position{}, false
	}
	return display.Position{X: x, Y: y}, true
}

// ParseScale reads a positive, finite real number
func ParseScale(field string) (float64, bool) {
	v, err := strconv.ParseFloat(field, 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
