package ui

import (
	"math"
	"strings"

	"github.com/bnema/hyprmon/internal/display"
	"github.com/charmbracelet/lipgloss"
)

type cellStyle int

const (
	cellEmpty cellStyle = iota
	cellBorder
	cellSelected
	cellLabel
)

type cell struct {
	r     rune
	style cellStyle
}

// Rect is a monitor projected onto the terminal grid, in cells
type Rect struct {
	Col, Row      int
	Width, Height int
}

// Projection maps canvas space onto a cols x rows grid
type Projection struct {
	Canvas     display.Canvas
	Cols, Rows int
	scale      float64
}

// NewProjection fits the canvas into the grid, keeping the aspect ratio.
// Terminal cells are about twice as tall as they are wide.
func NewProjection(canvas display.Canvas, cols, rows int) Projection {
	p := Projection{Canvas: canvas, Cols: cols, Rows: rows}
	w, h := canvas.Width(), canvas.Height()
	if w <= 0 || h <= 0 || cols <= 0 || rows <= 0 {
		return p
	}
	p.scale = math.Min(float64(cols)/w, float64(rows)*2/h)
	return p
}

// Project converts a logical rectangle into grid cells measured from the
// top-left bound of the canvas, so negative coordinates land on screen.
func (p Projection) Project(x, y, w, h float64) Rect {
	if p.scale == 0 {
		return Rect{}
	}
	originX, originY := p.Canvas.XBounds[0], p.Canvas.YBounds[0]

	col := int(math.Round((x - originX) * p.scale))
	row := int(math.Round((y - originY) * p.scale / 2))
	right := int(math.Round((x + w - originX) * p.scale))
	bottom := int(math.Round((y + h - originY) * p.scale / 2))
	return Rect{Col: col, Row: row, Width: right - col, Height: bottom - row}
}

// renderCanvas draws every enabled monitor as a box with its name inside
func renderCanvas(s Styles, monitors []*display.Monitor, selected int, canvas display.Canvas, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	grid := make([][]cell, rows)
	for i := range grid {
		grid[i] = make([]cell, cols)
		for j := range grid[i] {
			grid[i][j] = cell{r: ' '}
		}
	}

	proj := NewProjection(canvas, cols, rows)

	// Selected monitor is drawn last
	order := make([]int, 0, len(monitors))
	for i := range monitors {
		if i != selected {
			order = append(order, i)
		}
	}
	if selected >= 0 && selected < len(monitors) {
		order = append(order, selected)
	}

	for _, i := range order {
		m := monitors[i]
		if !m.Enabled {
			continue
		}
		x, y, w, h := m.LogicalGeometry()
		if w == 0 || h == 0 {
			continue
		}
		style := cellBorder
		if i == selected {
			style = cellSelected
		}
		drawBox(grid, proj.Project(x, y, w, h), style, m.Name)
	}

	var b strings.Builder
	for i, row := range grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeRow(&b, s, row)
	}
	return b.String()
}

func drawBox(grid [][]cell, r Rect, style cellStyle, label string) {
	if r.Width < 2 {
		r.Width = 2
	}
	if r.Height < 2 {
		r.Height = 2
	}
	right, bottom := r.Col+r.Width-1, r.Row+r.Height-1

	set := func(row, col int, ch rune, st cellStyle) {
		if row < 0 || row >= len(grid) || col < 0 || col >= len(grid[row]) {
			return
		}
		grid[row][col] = cell{r: ch, style: st}
	}

	for col := r.Col + 1; col < right; col++ {
		set(r.Row, col, '─', style)
		set(bottom, col, '─', style)
	}
	for row := r.Row + 1; row < bottom; row++ {
		set(row, r.Col, '│', style)
		set(row, right, '│', style)
		for col := r.Col + 1; col < right; col++ {
			set(row, col, ' ', cellEmpty)
		}
	}
	set(r.Row, r.Col, '╭', style)
	set(r.Row, right, '╮', style)
	set(bottom, r.Col, '╰', style)
	set(bottom, right, '╯', style)

	inner := r.Width - 2
	if inner <= 0 || r.Height < 3 {
		return
	}
	runes := []rune(label)
	if len(runes) > inner {
		runes = runes[:inner]
	}
	row := r.Row + r.Height/2
	start := r.Col + 1 + (inner-len(runes))/2
	for i, ch := range runes {
		set(row, start+i, ch, cellLabel)
	}
}

func writeRow(b *strings.Builder, s Styles, row []cell) {
	styleFor := func(st cellStyle) *lipgloss.Style {
		switch st {
		case cellBorder:
			return &s.MonitorBorder
		case cellSelected:
			return &s.SelectedBorder
		case cellLabel:
			return &s.MonitorLabel
		default:
			return nil
		}
	}

	start := 0
	for i := 1; i <= len(row); i++ {
		if i < len(row) && row[i].style == row[start].style {
			continue
		}
		var run strings.Builder
		for _, c := range row[start:i] {
			run.WriteRune(c.r)
		}
		if st := styleFor(row[start].style); st != nil {
			b.WriteString(st.Render(run.String()))
		} else {
			b.WriteString(run.String())
		}
		start = i
	}
}
