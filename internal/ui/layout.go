// Package ui holds the frame shared by every view: a one-line header
// carrying the sync state, the content area, and the hint bar.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rohitkumarofficial/reactivities/internal/theme"
)

const (
	headerHeight    = 1
	statusBarHeight = 1
)

// Layout carries the terminal dimensions shared by all views.
type Layout struct {
	Width  int
	Height int
}

// NewLayout creates a Layout for the given terminal size.
func NewLayout(width, height int) Layout {
	return Layout{Width: width, Height: height}
}

// ContentHeight is the number of rows between the header and the hint
// bar.
func (l Layout) ContentHeight() int {
	h := l.Height - headerHeight - statusBarHeight
	if h < 0 {
		return 0
	}
	return h
}

// RenderHeader renders the title bar: application title on the left,
// sync state right-aligned in the remaining width.
func (l Layout) RenderHeader(title string, syncStatus string) string {
	left := theme.HeaderStyle.Render(title)

	rest := l.Width - lipgloss.Width(left)
	if rest < 0 {
		rest = 0
	}
	right := theme.HeaderStyle.
		Width(rest).
		Align(lipgloss.Right).
		Render(syncStatus)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// RenderStatusBar renders the hint bar across the full terminal width.
func (l Layout) RenderStatusBar(hints string) string {
	return theme.StatusBarStyle.
		Width(l.Width).
		MaxWidth(l.Width).
		Render(hints)
}

// RenderWithFrame stacks header, content, and hint bar. The content is
// padded to the available height so the hint bar stays pinned to the
// bottom row even when the schedule is short.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	body := lipgloss.NewStyle().
		Height(l.ContentHeight()).
		MaxHeight(l.ContentHeight()).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, statusBar)
}
