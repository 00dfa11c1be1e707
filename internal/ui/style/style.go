// Package style provides semantic terminal styling using lipgloss.
//
// This is the only place lipgloss is imported. All styling is semantic
// (Success, Warning, Error) rather than visual. When disabled, every
// helper returns the input string unchanged with no ANSI codes.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	enabled bool

	successStyle lipgloss.Style
	warningStyle lipgloss.Style
	errorStyle   lipgloss.Style
	infoStyle    lipgloss.Style
	headerStyle  lipgloss.Style
	mutedStyle   lipgloss.Style
)

// Default ANSI-256 palette.
const (
	colorSuccess = "2"
	colorWarning = "3"
	colorError   = "1"
	colorInfo    = "6"
	colorMuted   = "8"
)

// Init initializes the style package. NO_COLOR and RIG_NO_COLOR
// disable styling regardless of the enable parameter. Call once from
// main before any output.
func Init(enable bool) {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("RIG_NO_COLOR") != "" {
		enabled = false
		return
	}

	enabled = enable
	if !enabled {
		return
	}

	// Force ANSI256 so styling is deterministic regardless of the
	// terminal profile lipgloss would otherwise detect.
	lipgloss.SetColorProfile(termenv.ANSI256)

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorSuccess))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWarning))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorError))
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorInfo))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	headerStyle = lipgloss.NewStyle().Bold(true)
}

// Enabled returns whether styling is currently enabled.
func Enabled() bool {
	return enabled
}

// Success styles text for successful operations.
func Success(text string) string {
	if !enabled {
		return text
	}
	return successStyle.Render(text)
}

// Warning styles text for warning messages.
func Warning(text string) string {
	if !enabled {
		return text
	}
	return warningStyle.Render(text)
}

// Error styles text for error messages.
func Error(text string) string {
	if !enabled {
		return text
	}
	return errorStyle.Render(text)
}

// Info styles text for informational highlights.
func Info(text string) string {
	if !enabled {
		return text
	}
	return infoStyle.Render(text)
}

// Header styles section headers.
func Header(text string) string {
	if !enabled {
		return text
	}
	return headerStyle.Render(text)
}

// Muted styles secondary text.
func Muted(text string) string {
	if !enabled {
		return text
	}
	return mutedStyle.Render(text)
}
