// Package display holds the monitor model, its layout geometry and monitor discovery
package display

import (
	"errors"
	"fmt"

	"github.com/bnema/hyprmon/internal/logger"
)

var (
	// ErrModeIndexOutOfRange is returned when selecting a mode that does not exist
	ErrModeIndexOutOfRange = errors.New("mode index out of range")
	// ErrInvalidScale is returned for zero or negative scales
	ErrInvalidScale = errors.New("scale must be positive")
)

// Resolution is one mode an output supports
type Resolution struct {
	Width     int     `json:"width" yaml:"width"`
	Height    int     `json:"height" yaml:"height"`
	Refresh   float64 `json:"refresh" yaml:"refresh"`
	Preferred bool    `json:"preferred" yaml:"preferred"`
	Current   bool    `json:"current" yaml:"current"`
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d@%s", r.Width, r.Height, FormatFloat(r.Refresh))
}

// Position is the top-left corner of an output in compositor logical pixels
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Monitor represents one output as reported by discovery.
// The field tags follow the wlr-randr --json schema.
type Monitor struct {
	Name        string       `json:"name" yaml:"name"`
	Description *string      `json:"description,omitempty" yaml:"description,omitempty"`
	Enabled     bool         `json:"enabled" yaml:"enabled"`
	Modes       []Resolution `json:"modes" yaml:"modes"`
	Position    *Position    `json:"position,omitempty" yaml:"position,omitempty"`
	Scale       *float64     `json:"scale,omitempty" yaml:"scale,omitempty"`
	Transform   *string      `json:"transform,omitempty" yaml:"transform,omitempty"`

	// Session-only placement stash, never persisted
	SavedPosition *Position `json:"-" yaml:"-"`
	SavedScale    *float64  `json:"-" yaml:"-"`
}

// CurrentResolution returns the active mode, or nil
func (m *Monitor) CurrentResolution() *Resolution {
	for i := range m.Modes {
		if m.Modes[i].Current {
			return &m.Modes[i]
		}
	}
	return nil
}

// PreferredResolution returns the first mode flagged preferred, or nil
func (m *Monitor) PreferredResolution() *Resolution {
	for i := range m.Modes {
		if m.Modes[i].Preferred {
			return &m.Modes[i]
		}
	}
	return nil
}

// EffectiveMode prefers the current mode and falls back to the preferred one
func (m *Monitor) EffectiveMode() *Resolution {
	if mode := m.CurrentResolution(); mode != nil {
		return mode
	}
	return m.PreferredResolution()
}

// CurrentModeIndex returns the index of the current mode, or -1
func (m *Monitor) CurrentModeIndex() int {
	for i := range m.Modes {
		if m.Modes[i].Current {
			return i
		}
	}
	return -1
}

// SetCurrentResolution marks the mode at index as the only current one
func (m *Monitor) SetCurrentResolution(index int) error {
	if index < 0 || index >= len(m.Modes) {
		logger.Warnf("Mode index out of bounds for %s: %d (have %d modes)", m.Name, index, len(m.Modes))
		return fmt.Errorf("%s: %w: %d", m.Name, ErrModeIndexOutOfRange, index)
	}
	for i := range m.Modes {
		m.Modes[i].Current = false
	}
	m.Modes[index].Current = true
	return nil
}

// MoveHorizontal shifts the monitor along x; unplaced monitors are left alone
func (m *Monitor) MoveHorizontal(delta int) {
	if m.Position != nil {
		m.Position.X += delta
	}
}

// MoveVertical shifts the monitor along y; unplaced monitors are left alone
func (m *Monitor) MoveVertical(delta int) {
	if m.Position != nil {
		m.Position.Y += delta
	}
}

// Rotation decodes the monitor's transform tag
func (m *Monitor) Rotation() Rotation {
	return RotationFromTransform(m.Transform)
}

// Rotate advances the transform to the next quarter turn
func (m *Monitor) Rotate() {
	tag := m.Rotation().Next().Transform()
	m.Transform = &tag
}

// ScaleOrDefault returns the scale, or 1 when unset
func (m *Monitor) ScaleOrDefault() float64 {
	if m.Scale == nil {
		return 1.0
	}
	return *m.Scale
}

// SetScale updates the scale
func (m *Monitor) SetScale(v float64) error {
	if v <= 0 {
		return fmt.Errorf("%s: %w: %v", m.Name, ErrInvalidScale, v)
	}
	m.Scale = &v
	return nil
}

// Disable turns the output off and stashes its placement so Enable can bring it back
func (m *Monitor) Disable() {
	if m.Position != nil {
		p := *m.Position
		m.SavedPosition = &p
	}
	if m.Scale != nil {
		s := *m.Scale
		m.SavedScale = &s
	}
	m.Enabled = false
}

// Enable turns the output on, restoring any stashed placement and
// making sure a mode and a position are resolvable.
func (m *Monitor) Enable() {
	m.Enabled = true
	if m.Position == nil {
		if m.SavedPosition != nil {
			p := *m.SavedPosition
			m.Position = &p
		} else {
			m.Position = &Position{}
		}
	}
	if m.Scale == nil && m.SavedScale != nil {
		s := *m.SavedScale
		m.Scale = &s
	}
	if m.CurrentResolution() == nil && len(m.Modes) > 0 {
		index := 0
		for i := range m.Modes {
			if m.Modes[i].Preferred {
				index = i
				break
			}
		}
		m.Modes[index].Current = true
	}
}

// ToggleEnabled flips between Enable and Disable
func (m *Monitor) ToggleEnabled() {
	if m.Enabled {
		m.Disable()
	} else {
		m.Enable()
	}
}

// LogicalGeometry returns x, y and the logical size of the monitor.
// It never fails: no mode gives all zeros and a missing position reads as the origin.
func (m *Monitor) LogicalGeometry() (x, y, width, height float64) {
	mode := m.EffectiveMode()
	if mode == nil {
		return 0, 0, 0, 0
	}
	width, height = logicalSize(mode, m.Rotation(), m.ScaleOrDefault())
	if m.Position != nil {
		x, y = float64(m.Position.X), float64(m.Position.Y)
	}
	return x, y, width, height
}

// Label is the human readable name used by the UI
func (m *Monitor) Label() string {
	if m.Description != nil && *m.Description != "" {
		return fmt.Sprintf("%s (%s)", m.Name, *m.Description)
	}
	return m.Name
}

// Clone returns a deep copy
func (m *Monitor) Clone() *Monitor {
	c := *m
	c.Modes = append([]Resolution(nil), m.Modes...)
	c.Description = clonePtr(m.Description)
	c.Position = clonePtr(m.Position)
	c.Scale = clonePtr(m.Scale)
	c.Transform = clonePtr(m.Transform)
	c.SavedPosition = clonePtr(m.SavedPosition)
	c.SavedScale = clonePtr(m.SavedScale)
	return &c
}

// CloneAll deep copies a monitor set
func CloneAll(monitors []*Monitor) []*Monitor {
	out := make([]*Monitor, len(monitors))
	for i, m := range monitors {
		out[i] = m.Clone()
	}
	return out
}

// FindMonitor returns the monitor with the exact name, or nil
func FindMonitor(monitors []*Monitor, name string) *Monitor {
	for _, m := range monitors {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
