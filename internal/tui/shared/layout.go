package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Overlay centers a box in the available area. A zero size (before the first
// WindowSizeMsg) returns the box as is.
func Overlay(box string, width, height int) string {
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// CenterContent pads content with blank lines so it sits vertically centered
// in height lines.
func CenterContent(content string, height int) string {
	content = strings.TrimRight(content, "\n")

	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}
	if len(lines) >= height {
		return content
	}

	top := (height - len(lines)) / 2
	out := make([]string, 0, height)
	for range top {
		out = append(out, "")
	}
	out = append(out, lines...)
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

// PadToHeight appends blank lines until content is height lines tall, so a
// footer below it stays pinned to the bottom.
func PadToHeight(content string, height int) string {
	content = strings.TrimRight(content, "\n")
	n := strings.Count(content, "\n") + 1
	if n >= height {
		return content
	}
	return content + strings.Repeat("\n", height-n)
}
