package tui

import (
	"strings"

	"github.com/jeanpaul/studentdb/internal/student"
)

// RecordCard renders a record's display encoding with styled labels.
func RecordCard(r student.Record) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(r.Display(), "\n"), "\n") {
		label, value, ok := strings.Cut(line, ": ")
		if !ok {
			b.WriteString(line + "\n")
			continue
		}
		b.WriteString(LabelStyle.Render(label+":") + " " + ValueStyle.Render(value) + "\n")
	}
	return b.String()
}

// Separator returns a horizontal rule of the given width.
func Separator(width int) string {
	return SeparatorStyle.Render(strings.Repeat("─", width))
}

// MakeBar draws a proportional bar of width cells for value in [0,1].
func MakeBar(value float64, width int) string {
	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
