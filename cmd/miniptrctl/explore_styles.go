package main

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	primaryColor = lipgloss.Color("#7D56F4")
	accentColor  = lipgloss.Color("#FF00FF")
	successColor = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF4B4B")
	mutedColor   = lipgloss.Color("#666666")
	borderColor  = lipgloss.Color("#383838")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	liveSlotStyle = lipgloss.NewStyle().Foreground(successColor)
	freeSlotStyle = lipgloss.NewStyle().Foreground(mutedColor)
	nextSlotStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)

	labelStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle  = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(successColor).Italic(true)

	// Help overlay
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)

	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)
)
