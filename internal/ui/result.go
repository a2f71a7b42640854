package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/vibetagger/internal/vibe"
)

// NoSelection disables the caption cursor in RenderCaptionList.
const NoSelection = -1

// RenderCaptionList renders one line per caption: a colored style label
// followed by the text. The caption at index selected gets a marker.
func RenderCaptionList(captions []vibe.Caption, selected int, width int) string {
	textWidth := ClampWidth(width) - 24 // border, padding, marker and label
	if textWidth < 20 {
		textWidth = 20
	}

	lines := make([]string, 0, len(captions))
	for i, c := range captions {
		marker := "  "
		textStyle := CaptionTextStyle
		if i == selected {
			marker = SelectedMarker + " "
			textStyle = SelectedCaptionStyle
		}

		label := CaptionLabelStyle(c.Style).Render(string(c.Style))
		text := textStyle.Width(textWidth).Render(c.Text)
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, marker, label, text))
	}
	return strings.Join(lines, "\n")
}

// RenderHashtags renders the hashtags wrapped to the box width.
func RenderHashtags(hashtags []string, width int) string {
	w := ClampWidth(width) - 8
	return HashtagStyle.Width(w).Render(strings.Join(hashtags, " "))
}

// RenderVibe renders a complete result card: the vibe, the captions and the
// hashtags.
func RenderVibe(r *vibe.Result, selected int, width int) string {
	width = ClampWidth(width)

	lines := []string{
		"",
		VibeLabelStyle.Render("DETECTED VIBE"),
		VibeTitleStyle.Render(r.Vibe),
		"",
		SectionTitleStyle.Render("Captions"),
		RenderCaptionList(r.Captions, selected, width),
		"",
		SectionTitleStyle.Render(fmt.Sprintf("Hashtags (%d)", len(r.Hashtags))),
		RenderHashtags(r.Hashtags, width),
		"",
	}

	if !r.Complete() {
		lines = append(lines,
			HintStyle.Render(fmt.Sprintf("Expected %d captions and %d hashtags.", vibe.CaptionCount, vibe.HashtagCount)),
			"",
		)
	}

	return VibeBoxStyle(width).Render(strings.Join(lines, "\n"))
}

// RenderFailure renders a failure box with an optional troubleshooting list.
func RenderFailure(title string, message string, troubleshooting []string, width int) string {
	width = ClampWidth(width)

	lines := []string{
		"",
		ErrorTitleStyle.Render(fmt.Sprintf("%s  FAILED  ─  %s", FailureMarker, title)),
		"",
	}

	if message != "" {
		lines = append(lines, ErrorMessageStyle.Width(width-8).Render(message), "")
	}

	if len(troubleshooting) > 0 {
		trouble := []string{TroubleshootingTitleStyle.Render("Troubleshooting:"), ""}
		for _, tip := range troubleshooting {
			trouble = append(trouble, TroubleshootingItemStyle.Render("  • "+tip))
		}
		lines = append(lines, TroubleshootingBoxStyle(width).Render(strings.Join(trouble, "\n")), "")
	}

	return ErrorBoxStyle(width).Render(strings.Join(lines, "\n"))
}

// RenderDetails renders aligned key/value lines.
func RenderDetails(details []Param) string {
	lines := make([]string, 0, len(details))
	for _, d := range details {
		lines = append(lines, ResultKeyStyle.Render(d.Key+":")+" "+ResultValueStyle.Render(d.Value))
	}
	return strings.Join(lines, "\n")
}
