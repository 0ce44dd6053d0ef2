// Package styles provides the styling system for the citybike TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette. Amber is the brand color, teal the secondary.
var (
	Amber300 = lipgloss.Color("#fcd34d")
	Amber400 = lipgloss.Color("#fbbf24")

	Teal400 = lipgloss.Color("#2dd4bf")

	Red400 = lipgloss.Color("#f87171")

	Neutral200 = lipgloss.Color("#e5e5e5")
	Neutral500 = lipgloss.Color("#737373")
	Neutral700 = lipgloss.Color("#404040")
	Neutral800 = lipgloss.Color("#262626")

	// Semantic colors
	ColorPrimary   = Amber400
	ColorSecondary = Teal400
	ColorWarning   = Amber300
	ColorError     = Red400

	// Text colors
	ColorText      = Neutral200
	ColorTextMuted = Neutral500

	// Background and border colors
	ColorBgMuted = Neutral800
	ColorBorder  = Neutral700
)
