// Package styles provides the shared theme for the quotechat UI.
package styles

import (
	"charm.land/lipgloss/v2"
)

// Color palette - ANSI 256 colors used throughout the application
var (
	// Primary accent color (purple)
	ColorAccent = lipgloss.Color("141")

	// Text colors
	ColorText       = lipgloss.Color("252") // Primary text
	ColorTextMuted  = lipgloss.Color("245") // Secondary/muted text
	ColorTextBright = lipgloss.Color("15")  // Bright/highlighted text

	// Semantic colors
	ColorError   = lipgloss.Color("196")
	ColorWarning = lipgloss.Color("214")
	ColorSuccess = lipgloss.Color("42")

	// Speaker colors
	ColorUser      = lipgloss.Color("117")
	ColorAssistant = lipgloss.Color("219")

	ColorPlaceholder = lipgloss.Color("240")

	// Border colors
	ColorBorder      = lipgloss.Color("141") // Default border (matches accent)
	ColorBorderMuted = lipgloss.Color("62")
)

// Panel/Box styles
var (
	// BoxStyle is the rounded frame around the transcript
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	// InputBoxStyle frames the message input
	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorderMuted)

	// QuoteGutterStyle draws the bar that sets a quotation apart
	QuoteGutterStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)
)

// Text styles
var (
	// TitleStyle for the header and quote headings
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	// TextStyle for normal text
	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// TextMutedStyle for secondary/helper text
	TextMutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	// TextBoldStyle for emphasized text
	TextBoldStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	// TextItalicStyle for *italic* spans
	TextItalicStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Italic(true)

	// TextBoldItalicStyle for italic spans nested in bold
	TextBoldItalicStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Bold(true).
				Italic(true)
)

// Transcript styles
var (
	UserLabelStyle = lipgloss.NewStyle().
			Foreground(ColorUser).
			Bold(true)

	AssistantLabelStyle = lipgloss.NewStyle().
				Foreground(ColorAssistant).
				Bold(true)

	// LoadingStyle for the animated placeholder
	LoadingStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	// IntentStyle for the detected intent line
	IntentStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	// ThinkingStyle for the thinking steps list
	ThinkingStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	// PlaceholderStyle for placeholder text
	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(ColorPlaceholder).
				Italic(true)
)

// Feedback styles
var (
	// ErrorStyle for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	// FooterStyle for footer/help text
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)
)

// Status bar styles
var (
	// StatusBarStyle is the default status bar style (purple theme)
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	// StatusBarBusyStyle marks a pending request
	StatusBarBusyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#00B8D4")).
				Padding(0, 1).
				Bold(true)
)

// Welcome message styles
var (
	// WelcomeTitleStyle for the empty-transcript greeting
	WelcomeTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("219")).
				Bold(true)

	// WelcomeKeyStyle for keyboard shortcut keys
	WelcomeKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")).
			Bold(true)
)
