package display

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func testModes() []Resolution {
	return []Resolution{
		{Width: 2560, Height: 1440, Refresh: 144, Preferred: true},
		{Width: 1920, Height: 1080, Refresh: 60},
		{Width: 1280, Height: 720, Refresh: 60},
	}
}

func TestMonitorResolutionQueries(t *testing.T) {
	t.Run("no modes", func(t *testing.T) {
		m := &Monitor{Name: "DP-1"}
		assert.Nil(t, m.CurrentResolution())
		assert.Nil(t, m.PreferredResolution())
		assert.Nil(t, m.EffectiveMode())
		assert.Equal(t, -1, m.CurrentModeIndex())
	})

	t.Run("falls back to preferred", func(t *testing.T) {
		m := &Monitor{Name: "DP-1", Modes: testModes()}
		assert.Nil(t, m.CurrentResolution())
		require.NotNil(t, m.EffectiveMode())
		assert.Equal(t, 2560, m.EffectiveMode().Width)
	})

	t.Run("first preferred wins", func(t *testing.T) {
		modes := testModes()
		modes[2].Preferred = true
		m := &Monitor{Name: "DP-1", Modes: modes}
		assert.Equal(t, 2560, m.PreferredResolution().Width)
	})

	t.Run("current beats preferred", func(t *testing.T) {
		m := &Monitor{Name: "DP-1", Modes: testModes()}
		require.NoError(t, m.SetCurrentResolution(1))
		assert.Equal(t, 1920, m.EffectiveMode().Width)
		assert.Equal(t, 1, m.CurrentModeIndex())
	})
}

func TestSetCurrentResolution(t *testing.T) {
	m := &Monitor{Name: "DP-1", Modes: testModes()}
	require.NoError(t, m.SetCurrentResolution(2))
	require.NoError(t, m.SetCurrentResolution(0))

	current := 0
	for _, mode := range m.Modes {
		if mode.Current {
			current++
		}
	}
	assert.Equal(t, 1, current, "exactly one mode is current")
	assert.True(t, m.Modes[0].Current)

	t.Run("index equal to length is rejected", func(t *testing.T) {
		before := append([]Resolution(nil), m.Modes...)
		err := m.SetCurrentResolution(len(m.Modes))
		assert.ErrorIs(t, err, ErrModeIndexOutOfRange)
		assert.Equal(t, before, m.Modes)
	})

	t.Run("negative index is rejected", func(t *testing.T) {
		err := m.SetCurrentResolution(-1)
		assert.ErrorIs(t, err, ErrModeIndexOutOfRange)
		assert.True(t, m.Modes[0].Current)
	})
}

func TestMonitorMove(t *testing.T) {
	m := &Monitor{Name: "DP-1", Position: &Position{X: 10, Y: 20}}
	m.MoveHorizontal(-30)
	m.MoveVertical(5)
	assert.Equal(t, Position{X: -20, Y: 25}, *m.Position)

	unplaced := &Monitor{Name: "HDMI-A-1"}
	unplaced.MoveHorizontal(10)
	unplaced.MoveVertical(10)
	assert.Nil(t, unplaced.Position)
}

func TestLogicalGeometry(t *testing.T) {
	t.Run("degenerate without mode", func(t *testing.T) {
		m := &Monitor{Name: "DP-1", Position: &Position{X: 100, Y: 100}}
		x, y, w, h := m.LogicalGeometry()
		assert.Equal(t, []float64{0, 0, 0, 0}, []float64{x, y, w, h})
	})

	t.Run("rotated and scaled", func(t *testing.T) {
		m := &Monitor{
			Name:      "eDP-1",
			Modes:     []Resolution{{Width: 2880, Height: 1800, Refresh: 60, Current: true}},
			Position:  &Position{X: 1920, Y: -200},
			Scale:     floatPtr(2),
			Transform: strPtr("270"),
		}
		x, y, w, h := m.LogicalGeometry()
		assert.Equal(t, 1920.0, x)
		assert.Equal(t, -200.0, y)
		assert.Equal(t, 900.0, w)
		assert.Equal(t, 1440.0, h)
	})

	t.Run("missing position reads as origin", func(t *testing.T) {
		m := &Monitor{Name: "DP-1", Modes: testModes()}
		x, y, w, h := m.LogicalGeometry()
		assert.Equal(t, []float64{0, 0, 2560, 1440}, []float64{x, y, w, h})
	})
}

func TestRotateAndScale(t *testing.T) {
	m := &Monitor{Name: "DP-1"}
	m.Rotate()
	require.NotNil(t, m.Transform)
	assert.Equal(t, "90", *m.Transform)
	m.Rotate()
	m.Rotate()
	m.Rotate()
	assert.Equal(t, "normal", *m.Transform)

	assert.Equal(t, 1.0, m.ScaleOrDefault())
	require.NoError(t, m.SetScale(1.5))
	assert.Equal(t, 1.5, m.ScaleOrDefault())
	assert.ErrorIs(t, m.SetScale(0), ErrInvalidScale)
	assert.ErrorIs(t, m.SetScale(-1), ErrInvalidScale)
	assert.Equal(t, 1.5, m.ScaleOrDefault())
}

func TestDisableEnableRestoresPlacement(t *testing.T) {
	m := &Monitor{
		Name:     "DP-1",
		Enabled:  true,
		Modes:    testModes(),
		Position: &Position{X: 1920, Y: 0},
		Scale:    floatPtr(1.25),
	}

	m.Disable()
	assert.False(t, m.Enabled)
	require.NotNil(t, m.SavedPosition)
	assert.Equal(t, Position{X: 1920, Y: 0}, *m.SavedPosition)
	assert.Equal(t, 1.25, *m.SavedScale)

	// Placement is dropped by something else while disabled
	m.Position = nil
	m.Scale = nil

	m.Enable()
	assert.True(t, m.Enabled)
	require.NotNil(t, m.Position)
	assert.Equal(t, Position{X: 1920, Y: 0}, *m.Position)
	assert.Equal(t, 1.25, m.ScaleOrDefault())
	assert.Equal(t, 0, m.CurrentModeIndex(), "preferred mode becomes current")

	m.ToggleEnabled()
	assert.False(t, m.Enabled)
	m.ToggleEnabled()
	assert.True(t, m.Enabled)
}

func TestEnableWithoutHistoryPlacesAtOrigin(t *testing.T) {
	m := &Monitor{Name: "HDMI-A-1", Modes: []Resolution{{Width: 1024, Height: 768, Refresh: 60}}}
	m.Enable()
	require.NotNil(t, m.Position)
	assert.Equal(t, Position{}, *m.Position)
	assert.Equal(t, 0, m.CurrentModeIndex())
}

func TestSavedFieldsAreNotSerialized(t *testing.T) {
	m := &Monitor{
		Name:          "DP-1",
		SavedPosition: &Position{X: 5, Y: 5},
		SavedScale:    floatPtr(2),
	}
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "saved")
	assert.NotContains(t, string(data), "Saved")
}

func TestCloneIsDeep(t *testing.T) {
	m := &Monitor{Name: "DP-1", Modes: testModes(), Position: &Position{X: 1}, Scale: floatPtr(1)}
	c := m.Clone()
	c.Position.X = 99
	c.Modes[0].Current = true
	*c.Scale = 3

	assert.Equal(t, 1, m.Position.X)
	assert.False(t, m.Modes[0].Current)
	assert.Equal(t, 1.0, *m.Scale)
}

func TestFindMonitor(t *testing.T) {
	monitors := []*Monitor{{Name: "DP-1"}, {Name: "DP-2"}}
	assert.Same(t, monitors[1], FindMonitor(monitors, "DP-2"))
	assert.Nil(t, FindMonitor(monitors, "dp-2"))
}
