package styles

import "github.com/charmbracelet/lipgloss"

// Theme contains the composed styles used by the TUI and the list output.
var Theme = struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style

	Warning lipgloss.Style
	Error   lipgloss.Style

	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	ListBullet       lipgloss.Style

	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	TableBorder lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary),

	Subtitle: lipgloss.NewStyle().
		Foreground(ColorTextMuted),

	Muted: lipgloss.NewStyle().
		Foreground(ColorTextMuted),

	Warning: lipgloss.NewStyle().
		Foreground(ColorWarning),

	Error: lipgloss.NewStyle().
		Foreground(ColorError),

	ListItem: lipgloss.NewStyle().
		Foreground(ColorText).
		PaddingLeft(1),

	ListItemSelected: lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Background(ColorBgMuted).
		PaddingLeft(1),

	ListBullet: lipgloss.NewStyle().
		Foreground(ColorSecondary),

	TableHeader: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1),

	TableCell: lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 1),

	TableBorder: lipgloss.NewStyle().
		Foreground(ColorBorder),

	HelpKey: lipgloss.NewStyle().
		Foreground(ColorPrimary),

	HelpDesc: lipgloss.NewStyle().
		Foreground(ColorTextMuted),
}

// RenderKeyHelp returns formatted key binding help text.
func RenderKeyHelp(key, desc string) string {
	return Theme.HelpKey.Render(key) + " " + Theme.HelpDesc.Render(desc)
}

// RenderListItem returns a list row with a cursor marker when selected.
func RenderListItem(item string, selected bool) string {
	if selected {
		return Theme.ListBullet.Render(IconCursor) + Theme.ListItemSelected.Render(item)
	}
	return " " + Theme.ListItem.Render(item)
}

// RenderWarning returns a styled warning message.
func RenderWarning(msg string) string {
	return Theme.Warning.Render(IconWarning + " " + msg)
}

// RenderError returns a styled error message.
func RenderError(msg string) string {
	return Theme.Error.Render(IconError + " " + msg)
}
