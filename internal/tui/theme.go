package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Core palette
	Green       = lipgloss.Color("#00FF41")
	BrightGreen = lipgloss.Color("#39FF14")
	MedGreen    = lipgloss.Color("#00C832")
	DarkGreen   = lipgloss.Color("#008F11")
	DimGreen    = lipgloss.Color("#003B00")
	Cyan        = lipgloss.Color("#00D4AA")
	MidGray     = lipgloss.Color("#3a3a4e")
	LightGray   = lipgloss.Color("#aaaaaa")
	White       = lipgloss.Color("#e0e0e0")

	// User messages
	UserLabelStyle = lipgloss.NewStyle().
			Foreground(BrightGreen).
			Bold(true)

	UserMsgStyle = lipgloss.NewStyle().
			Foreground(Green)

	// Agent messages
	AgentLabelStyle = lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true)

	AgentMsgStyle = lipgloss.NewStyle().
			Foreground(White)

	// System notices and command output
	SystemMsgStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	// Error
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4136")).
			Bold(true)

	// Header status line
	StatusStyle = lipgloss.NewStyle().
			Foreground(MedGreen)

	// Input
	InputBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(DarkGreen).
				Padding(0, 1)

	InputActiveStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Green).
				Padding(0, 1)

	// Conversation viewport
	ViewportStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGreen).
			Padding(0, 1)

	// Command menu popup
	MenuBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Padding(0, 1)

	// Spinner
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(BrightGreen)

	// Banner
	BannerStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(DimGreen)
)

const Banner = `
   █████╗ ██╗  ██╗ ██████╗ ███╗   ██╗
  ██╔══██╗╚██╗██╔╝██╔═══██╗████╗  ██║
  ███████║ ╚███╔╝ ██║   ██║██╔██╗ ██║
  ██╔══██║ ██╔██╗ ██║   ██║██║╚██╗██║
  ██║  ██║██╔╝ ██╗╚██████╔╝██║ ╚████║
  ╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═══╝
`
