package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/hyprmon/internal/config"
	"github.com/bnema/hyprmon/internal/display"
	"github.com/bnema/hyprmon/internal/ui"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var listFormat string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered monitors",
	Long: `List the outputs reported by the compositor, with the saved Hyprland
directives applied on top, and the canvas they span.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := loadLayout(cmd.Context(), config.Get())
		if err != nil {
			return err
		}
		return writeListing(cmd.OutOrStdout(), listFormat, l)
	},
}

func init() {
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "text", "output format: text, json or yaml")
	rootCmd.AddCommand(listCmd)
}

// listing is the machine readable form of `list`
type listing struct {
	Backend  string             `json:"backend" yaml:"backend"`
	Monitors []*display.Monitor `json:"monitors" yaml:"monitors"`
	Canvas   *display.Canvas    `json:"canvas,omitempty" yaml:"canvas,omitempty"`
	Error    string             `json:"canvas_error,omitempty" yaml:"canvas_error,omitempty"`
}

func newListing(l *layout) listing {
	out := listing{Backend: l.Backend, Monitors: l.Monitors}
	if canvas, err := display.ComputeCanvas(l.Monitors); err != nil {
		out.Error = err.Error()
	} else {
		out.Canvas = &canvas
	}
	return out
}

func writeListing(w io.Writer, format string, l *layout) error {
	data := newListing(l)

	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		_, err := fmt.Fprintln(w, renderListing(data))
		return err
	default:
		return fmt.Errorf("unknown format %q (must be text, json or yaml)", format)
	}
}

func renderListing(data listing) string {
	var output strings.Builder

	output.WriteString(ui.FormatHeader("MONITORS"))
	output.WriteString("\n")

	if len(data.Monitors) == 0 {
		output.WriteString(lipgloss.NewStyle().Foreground(ui.ColorSubtle).Render("No monitors discovered"))
		return output.String()
	}

	rows := make([][]string, 0, len(data.Monitors))
	for _, m := range data.Monitors {
		mode := "none"
		if r := m.EffectiveMode(); r != nil {
			mode = r.String()
		}
		pos := "-"
		if m.Position != nil && m.Enabled {
			pos = fmt.Sprintf("%d,%d", m.Position.X, m.Position.Y)
		}
		rows = append(rows, []string{
			ui.FormatEnabled(m.Enabled),
			m.Name,
			mode,
			pos,
			display.FormatFloat(m.ScaleOrDefault()),
			m.Rotation().String(),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ui.ColorSubtle)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return lipgloss.NewStyle().
					Foreground(ui.ColorPrimary).
					Bold(true).
					Padding(0, 1)
			case col == 1:
				return lipgloss.NewStyle().
					Foreground(ui.ColorInfo).
					Bold(true).
					Padding(0, 1)
			default:
				return lipgloss.NewStyle().
					Foreground(ui.ColorText).
					Padding(0, 1)
			}
		}).
		Headers("", "NAME", "MODE", "POSITION", "SCALE", "ROTATION").
		Rows(rows...)

	output.WriteString(t.String())
	output.WriteString("\n\n")

	countStyle := lipgloss.NewStyle().Foreground(ui.ColorSubtle)
	switch {
	case data.Canvas != nil:
		c := data.Canvas
		output.WriteString(countStyle.Render(fmt.Sprintf(
			"Canvas: x %s..%s, y %s..%s (%sx%s), offset %d  via %s",
			display.FormatFloat(c.XBounds[0]), display.FormatFloat(c.XBounds[1]),
			display.FormatFloat(c.YBounds[0]), display.FormatFloat(c.YBounds[1]),
			display.FormatFloat(c.Width()), display.FormatFloat(c.Height()),
			c.OffsetY, data.Backend,
		)))
	default:
		output.WriteString(ui.FormatResult(false, "Canvas unavailable: "+data.Error))
	}
	return output.String()
}
