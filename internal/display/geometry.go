package display

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// CanvasMargin is the padding added around the aggregate bounding box
const CanvasMargin = 50.0

var (
	// ErrNoResolution means an enabled monitor has neither a current nor a preferred mode
	ErrNoResolution = errors.New("no current or preferred resolution")
	// ErrNoPosition means an enabled monitor has not been placed
	ErrNoPosition = errors.New("no position")
)

// Footprint is a monitor's rectangle in logical pixels, after rotation and scale
type Footprint struct {
	X, Y          float64
	Width, Height float64
}

func (f Footprint) Left() float64   { return f.X }
func (f Footprint) Right() float64  { return f.X + f.Width }
func (f Footprint) Bottom() float64 { return f.Y }
func (f Footprint) Top() float64    { return f.Y + f.Height }

// Canvas is the padded bounding box over every enabled monitor
type Canvas struct {
	XBounds [2]float64 `json:"x_bounds" yaml:"x_bounds"` // left, right
	YBounds [2]float64 `json:"y_bounds" yaml:"y_bounds"` // bottom, top
	Top     int        `json:"top" yaml:"top"`
	OffsetY int        `json:"offset_y" yaml:"offset_y"` // upward shift that keeps the arrangement out of negative y
}

// Width of the canvas in logical pixels
func (c Canvas) Width() float64 { return c.XBounds[1] - c.XBounds[0] }

// Height of the canvas in logical pixels
func (c Canvas) Height() float64 { return c.YBounds[1] - c.YBounds[0] }

func logicalSize(mode *Resolution, rot Rotation, scale float64) (float64, float64) {
	w, h := mode.Width, mode.Height
	if rot.SwapsAxes() {
		w, h = h, w
	}
	return float64(w) / scale, float64(h) / scale
}

// EffectiveFootprint computes the monitor's logical rectangle.
// Unlike Monitor.LogicalGeometry it refuses to guess: a missing mode or
// position is reported as ErrNoResolution or ErrNoPosition.
func EffectiveFootprint(m *Monitor) (Footprint, error) {
	mode := m.EffectiveMode()
	if mode == nil {
		return Footprint{}, fmt.Errorf("monitor %s: %w", m.Name, ErrNoResolution)
	}
	if m.Position == nil {
		return Footprint{}, fmt.Errorf("monitor %s: %w", m.Name, ErrNoPosition)
	}
	w, h := logicalSize(mode, m.Rotation(), m.ScaleOrDefault())
	return Footprint{
		X:      float64(m.Position.X),
		Y:      float64(m.Position.Y),
		Width:  w,
		Height: h,
	}, nil
}

// ComputeCanvas folds the footprints of all enabled monitors into one padded box.
// Disabled monitors are ignored entirely. An enabled monitor without a mode
// or position aborts the computation. With nothing enabled the box collapses
// to the origin before the margin is applied.
func ComputeCanvas(monitors []*Monitor) (Canvas, error) {
	var left, right, bottom, top float64
	seen := false

	for _, m := range monitors {
		if !m.Enabled {
			continue
		}
		fp, err := EffectiveFootprint(m)
		if err != nil {
			return Canvas{}, err
		}
		if !seen {
			seen = true
			left, right, bottom, top = fp.Left(), fp.Right(), fp.Bottom(), fp.Top()
			continue
		}
		left = math.Min(left, fp.Left())
		right = math.Max(right, fp.Right())
		bottom = math.Min(bottom, fp.Bottom())
		top = math.Max(top, fp.Top())
	}

	left -= CanvasMargin
	right += CanvasMargin
	bottom -= CanvasMargin
	top += CanvasMargin

	return Canvas{
		XBounds: [2]float64{left, right},
		YBounds: [2]float64{bottom, top},
		Top:     int(math.Round(top)),
		OffsetY: int(math.Round(math.Max(0, -bottom))),
	}, nil
}

// FormatFloat renders refresh rates and scales in their shortest form: 60, 59.951, 1.25
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
