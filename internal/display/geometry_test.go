package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placed(name string, w, h, x, y int) *Monitor {
	return &Monitor{
		Name:     name,
		Enabled:  true,
		Modes:    []Resolution{{Width: w, Height: h, Refresh: 60, Current: true}},
		Position: &Position{X: x, Y: y},
	}
}

func TestEffectiveFootprintRotation(t *testing.T) {
	tests := []struct {
		transform string
		w, h      float64
	}{
		{"normal", 1920, 1080},
		{"90", 1080, 1920},
		{"180", 1920, 1080},
		{"270", 1080, 1920},
	}

	for _, tt := range tests {
		t.Run(tt.transform, func(t *testing.T) {
			m := placed("DP-1", 1920, 1080, 0, 0)
			m.Transform = strPtr(tt.transform)

			fp, err := EffectiveFootprint(m)
			require.NoError(t, err)
			assert.Equal(t, tt.w, fp.Width)
			assert.Equal(t, tt.h, fp.Height)
		})
	}
}

func TestEffectiveFootprintScaleAfterRotation(t *testing.T) {
	m := placed("eDP-1", 3000, 2000, 10, 20)
	m.Transform = strPtr("90")
	m.Scale = floatPtr(2)

	fp, err := EffectiveFootprint(m)
	require.NoError(t, err)
	assert.Equal(t, Footprint{X: 10, Y: 20, Width: 1000, Height: 1500}, fp)
	assert.Equal(t, 10.0, fp.Left())
	assert.Equal(t, 1010.0, fp.Right())
	assert.Equal(t, 20.0, fp.Bottom())
	assert.Equal(t, 1520.0, fp.Top())
}

func TestEffectiveFootprintPreconditions(t *testing.T) {
	t.Run("no resolution", func(t *testing.T) {
		m := &Monitor{Name: "DP-1", Enabled: true, Position: &Position{}}
		_, err := EffectiveFootprint(m)
		assert.ErrorIs(t, err, ErrNoResolution)
		assert.Contains(t, err.Error(), "DP-1")
	})

	t.Run("no position", func(t *testing.T) {
		m := &Monitor{Name: "DP-1", Enabled: true, Modes: testModes()}
		_, err := EffectiveFootprint(m)
		assert.ErrorIs(t, err, ErrNoPosition)
	})
}

func TestComputeCanvas(t *testing.T) {
	monitors := []*Monitor{
		placed("DP-1", 1920, 1080, 0, 0),
		placed("DP-2", 2560, 1440, 1920, -200),
	}

	canvas, err := ComputeCanvas(monitors)
	require.NoError(t, err)
	assert.Equal(t, [2]float64{-50, 4530}, canvas.XBounds)
	assert.Equal(t, [2]float64{-250, 1290}, canvas.YBounds)
	assert.Equal(t, 1290, canvas.Top)
	assert.Equal(t, 250, canvas.OffsetY)
	assert.Equal(t, 4580.0, canvas.Width())
	assert.Equal(t, 1540.0, canvas.Height())
}

func TestComputeCanvasEmpty(t *testing.T) {
	for name, monitors := range map[string][]*Monitor{
		"nil":          nil,
		"all disabled": {{Name: "DP-1", Modes: testModes(), Position: &Position{X: 5000, Y: -5000}}},
	} {
		t.Run(name, func(t *testing.T) {
			canvas, err := ComputeCanvas(monitors)
			require.NoError(t, err)
			assert.Equal(t, [2]float64{-50, 50}, canvas.XBounds)
			assert.Equal(t, [2]float64{-50, 50}, canvas.YBounds)
			assert.Equal(t, 50, canvas.Top)
			assert.Equal(t, 50, canvas.OffsetY)
		})
	}
}

func TestComputeCanvasIgnoresDisabled(t *testing.T) {
	base := []*Monitor{
		placed("DP-1", 1920, 1080, 0, 0),
		placed("DP-2", 1920, 1080, 1920, 0),
	}
	want, err := ComputeCanvas(base)
	require.NoError(t, err)

	far := placed("HDMI-A-1", 7680, 4320, -10000, -10000)
	far.Enabled = false
	broken := &Monitor{Name: "DP-3"} // no mode, no position
	withDisabled := append([]*Monitor{far}, append(base, broken)...)

	got, err := ComputeCanvas(withDisabled)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestComputeCanvasOffset(t *testing.T) {
	t.Run("negative bottom is lifted", func(t *testing.T) {
		// bottom after margin: 20 - 50 = -30
		canvas, err := ComputeCanvas([]*Monitor{placed("DP-1", 800, 600, 0, 20)})
		require.NoError(t, err)
		assert.Equal(t, -30.0, canvas.YBounds[0])
		assert.Equal(t, 30, canvas.OffsetY)
	})

	t.Run("non-negative bottom needs no offset", func(t *testing.T) {
		// bottom after margin: 70 - 50 = 20
		canvas, err := ComputeCanvas([]*Monitor{placed("DP-1", 800, 600, 0, 70)})
		require.NoError(t, err)
		assert.Equal(t, 20.0, canvas.YBounds[0])
		assert.Equal(t, 0, canvas.OffsetY)
	})
}

func TestComputeCanvasFractionalScaleRounds(t *testing.T) {
	m := placed("eDP-1", 2560, 1600, 0, 0)
	m.Scale = floatPtr(1.6)
	canvas, err := ComputeCanvas([]*Monitor{m})
	require.NoError(t, err)
	assert.InDelta(t, 1050.0, canvas.YBounds[1], 1e-9)
	assert.Equal(t, 1050, canvas.Top)

	m.Scale = floatPtr(3)
	canvas, err = ComputeCanvas([]*Monitor{m})
	require.NoError(t, err)
	assert.InDelta(t, 583.33, canvas.YBounds[1], 0.01)
	assert.Equal(t, 583, canvas.Top)
}

func TestComputeCanvasRejectsIncompleteEnabledMonitor(t *testing.T) {
	monitors := []*Monitor{
		placed("DP-1", 1920, 1080, 0, 0),
		{Name: "DP-2", Enabled: true, Modes: testModes()},
	}
	_, err := ComputeCanvas(monitors)
	assert.ErrorIs(t, err, ErrNoPosition)
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "60", FormatFloat(60))
	assert.Equal(t, "59.951", FormatFloat(59.951))
	assert.Equal(t, "1.25", FormatFloat(1.25))
}
