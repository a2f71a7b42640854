package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/vibetagger/internal/ui"
	"github.com/muurk/vibetagger/internal/version"
)

// Application branding constants
const (
	AppName = "VIBE-TAGGER"
	Tagline = "social captions from a single photo"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Common styles, built on the shared ui palette
var (
	// Title style
	TitleStyle = lipgloss.NewStyle().
			Foreground(ui.PrimaryColor).
			Bold(true).
			MarginBottom(1)

	// Subtitle style
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ui.MutedColor).
			Italic(true)

	// Input box style
	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.PrimaryColor).
			Padding(0, 1)

	// Spinner style
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ui.AccentColor)

	// Error panel style
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ui.ErrorColor).
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ErrorColor)

	// Notice style (e.g., "Copied!")
	NoticeStyle = lipgloss.NewStyle().
			Foreground(ui.SuccessColor).
			Bold(true)

	// Image info style
	ImageInfoStyle = lipgloss.NewStyle().
			Foreground(ui.SecondaryColor)
)

// RenderTitle renders a title with consistent styling
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderError renders an error panel
func RenderError(text string) string {
	return ErrorStyle.Render("✗ " + text)
}

// BuildHeaderContent creates header content with app name and tagline
func BuildHeaderContent() string {
	left := lipgloss.NewStyle().
		Foreground(ui.TextColor).
		Bold(true).
		Render(AppName + " v" + AppVersion())

	right := lipgloss.NewStyle().
		Foreground(ui.MutedColor).
		Render(Tagline)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// BuildFooterContent creates footer content with help text
func BuildFooterContent(helpText string) string {
	return lipgloss.NewStyle().
		Foreground(ui.MutedColor).
		Render(helpText)
}

// RenderApplicationContainer is the wrapper for every view in the application.
// It provides a full-screen bordered panel with the application header on
// top and the context-sensitive help pinned to the bottom.
//
//	func (m Model) View() string {
//	    content := m.buildContent()
//	    return RenderApplicationContainer(content, m.help.View(keys), m.width, m.height)
//	}
func RenderApplicationContainer(content string, footerText string, terminalWidth int, terminalHeight int) string {
	if terminalWidth < ui.MinTerminalWidth {
		terminalWidth = ui.MinTerminalWidth
	}
	if terminalHeight < 10 {
		terminalHeight = 10
	}

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(ui.PrimaryColor).
		Width(terminalWidth-4). // Leave room for outer border
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(ui.PrimaryColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth-4).
		Padding(1, 1)

	headerBlock := headerStyle.Render(BuildHeaderContent())
	footerBlock := footerStyle.Render(BuildFooterContent(footerText))

	// Pin the footer to the bottom of the panel
	contentHeight := terminalHeight - 2 - lipgloss.Height(headerBlock) - lipgloss.Height(footerBlock)
	if contentHeight < 1 {
		contentHeight = 1
	}
	contentBlock := contentStyle.Height(contentHeight).Render(content)

	inner := lipgloss.JoinVertical(lipgloss.Left, headerBlock, contentBlock, footerBlock)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(ui.PrimaryColor).
		Width(terminalWidth - 2).
		AlignVertical(lipgloss.Top).
		Render(inner)

	return lipgloss.Place(terminalWidth, terminalHeight, lipgloss.Left, lipgloss.Top, bordered)
}
