package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary    = lipgloss.Color("#7FB069") // Leaf green, primary accent
	colorAccent     = lipgloss.Color("#E6AA68") // Wheat, totals
	colorDanger     = lipgloss.Color("#CA3C25") // Brick, blocked/rejected
	colorMuted      = lipgloss.Color("#636363")
	colorMutedLight = lipgloss.Color("#8C8C8C")
	colorWhite      = lipgloss.Color("#EEEEEE")
	colorSurface    = lipgloss.Color("#1E1E2E")
)

// Selection indicator prepended to the active row.
const selectionIndicator = "▎"

// Row markers.
const (
	iconChecked   = "●"
	iconUnchecked = "○"
	iconDisabled  = "×"
)

var (
	styleHeader = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleProgress = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleStepDone = lipgloss.NewStyle().
			Foreground(colorPrimary)

	styleStepCurrent = lipgloss.NewStyle().
				Foreground(colorWhite).
				Bold(true)

	styleStepTodo = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// Option row styles.
var (
	styleRowSelected = lipgloss.NewStyle().
				Foreground(colorWhite).
				Bold(true)

	styleRowNormal = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleRowDisabled = lipgloss.NewStyle().
				Foreground(colorMuted).
				Strikethrough(true)

	styleDetail = lipgloss.NewStyle().
			Foreground(colorMuted).
			PaddingLeft(4)
)

// Cart widget styles.
var (
	styleCart = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1).
			Width(34)

	styleCartTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleCartTotal = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)
)

var (
	styleStatusError = lipgloss.NewStyle().Foreground(colorDanger)
	styleStatusInfo  = lipgloss.NewStyle().Foreground(colorPrimary)
	styleHelp        = lipgloss.NewStyle().Foreground(colorMuted)
	styleSlider      = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)
