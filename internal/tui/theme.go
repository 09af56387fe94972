package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Core palette
	Green       = lipgloss.Color("#00FF41")
	BrightGreen = lipgloss.Color("#39FF14")
	MedGreen    = lipgloss.Color("#00C832")
	DarkGreen   = lipgloss.Color("#008F11")
	DimGreen    = lipgloss.Color("#003B00")
	Cyan        = lipgloss.Color("#00D4AA")
	White       = lipgloss.Color("#e0e0e0")
	Red         = lipgloss.Color("#FF4136")
	Gold        = lipgloss.Color("#FFD700")
)

var (
	BannerStyle    lipgloss.Style
	LabelStyle     lipgloss.Style
	ValueStyle     lipgloss.Style
	KeyStyle       lipgloss.Style
	SuccessStyle   lipgloss.Style
	WarningStyle   lipgloss.Style
	ErrorStyle     lipgloss.Style
	HelpStyle      lipgloss.Style
	SeparatorStyle lipgloss.Style
	BoxStyle       lipgloss.Style
	TitleStyle     lipgloss.Style
)

func init() {
	applyGreen()
}

// ApplyTheme switches the package styles. Known themes are green and mono.
func ApplyTheme(name string) error {
	switch name {
	case "", "green":
		applyGreen()
	case "mono":
		applyMono()
	default:
		return fmt.Errorf("unknown theme %q (must be green or mono)", name)
	}
	return nil
}

func applyGreen() {
	BannerStyle = lipgloss.NewStyle().
		Foreground(Green).
		Bold(true)

	LabelStyle = lipgloss.NewStyle().
		Foreground(BrightGreen).
		Bold(true)

	ValueStyle = lipgloss.NewStyle().
		Foreground(White)

	KeyStyle = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(MedGreen).
		Bold(true)

	WarningStyle = lipgloss.NewStyle().
		Foreground(Gold).
		Bold(true)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(Red).
		Bold(true)

	HelpStyle = lipgloss.NewStyle().
		Foreground(DarkGreen)

	SeparatorStyle = lipgloss.NewStyle().
		Foreground(DimGreen)

	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(DarkGreen).
		Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
		Foreground(Green).
		Bold(true).
		MarginLeft(2)
}

func applyMono() {
	plain := lipgloss.NewStyle()
	BannerStyle = plain.Bold(true)
	LabelStyle = plain.Bold(true)
	ValueStyle = plain
	KeyStyle = plain.Bold(true)
	SuccessStyle = plain
	WarningStyle = plain
	ErrorStyle = plain.Bold(true)
	HelpStyle = plain
	SeparatorStyle = plain
	BoxStyle = plain.Border(lipgloss.NormalBorder()).Padding(0, 1)
	TitleStyle = plain.Bold(true).MarginLeft(2)
}

const Banner = `
  ███████╗████████╗██╗   ██╗██████╗ ███████╗███╗   ██╗████████╗██████╗ ██████╗
  ██╔════╝╚══██╔══╝██║   ██║██╔══██╗██╔════╝████╗  ██║╚══██╔══╝██╔══██╗██╔══██╗
  ███████╗   ██║   ██║   ██║██║  ██║█████╗  ██╔██╗ ██║   ██║   ██║  ██║██████╔╝
  ╚════██║   ██║   ██║   ██║██║  ██║██╔══╝  ██║╚██╗██║   ██║   ██║  ██║██╔══██╗
  ███████║   ██║   ╚██████╔╝██████╔╝███████╗██║ ╚████║   ██║   ██████╔╝██████╔╝
  ╚══════╝   ╚═╝    ╚═════╝ ╚═════╝ ╚══════╝╚═╝  ╚═══╝   ╚═╝   ╚═════╝ ╚═════╝
`
