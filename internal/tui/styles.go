package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Amber     = lipgloss.Color("#F59E0B")
	SlateDark = lipgloss.Color("#1F2937")
	DimGray   = lipgloss.Color("#6B7280")
	LightGray = lipgloss.Color("#9CA3AF")
	White     = lipgloss.Color("#F9FAFB")
	Green     = lipgloss.Color("#10B981")
	Red       = lipgloss.Color("#EF4444")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Amber)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(SlateDark).
			Bold(true).
			Padding(0, 1)
)

// List item styles
var (
	CursorItemStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(lipgloss.Color("#374151"))

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	PlayingItemStyle = lipgloss.NewStyle().
				Foreground(Amber).
				Bold(true)
)

// Panel styles
var (
	NowPlayingStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)

	QRStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Amber).
		Padding(0, 1)
)

// Raw indicator characters (unstyled)
const (
	PlayingChar = "♪"
	CursorChar  = "›"
)
