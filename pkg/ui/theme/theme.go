// Package theme defines the visual language of the TUI as a single struct of
// styles, injected where drawing happens so widgets never hardcode colors.
package theme

import "github.com/mdevan/cadence/pkg/ui/backend"

// Theme holds every style the UI draws with.
type Theme struct {
	// Text hierarchy
	Text      backend.Style
	TextDim   backend.Style
	TextBold  backend.Style
	Accent    backend.Style
	Highlight backend.Style

	// Chrome
	Border           backend.Style
	BorderProcessing backend.Style
	BorderInsert     backend.Style
	Title            backend.Style

	// Panels
	InputText    backend.Style
	InputActive  backend.Style
	Selection    backend.Style
	HelpHeader   backend.Style
	HelpKey      backend.Style
	FooterEvents backend.Style
}

// DefaultTheme returns the standard palette.
func DefaultTheme() *Theme {
	return &Theme{
		Text:      backend.DefaultStyle().Foreground(backend.ColorCyan),
		TextDim:   backend.DefaultStyle().Dim(),
		TextBold:  backend.DefaultStyle().Bold(),
		Accent:    backend.DefaultStyle().Foreground(backend.ColorRed),
		Highlight: backend.DefaultStyle().Foreground(backend.ColorYellow),

		Border:           backend.DefaultStyle(),
		BorderProcessing: backend.DefaultStyle().Foreground(backend.ColorYellow),
		BorderInsert:     backend.DefaultStyle().Foreground(backend.ColorYellow),
		Title:            backend.DefaultStyle().Bold(),

		InputText:    backend.DefaultStyle(),
		InputActive:  backend.DefaultStyle().Foreground(backend.ColorYellow),
		Selection:    backend.DefaultStyle().Foreground(backend.ColorBlue).Reverse(),
		HelpHeader:   backend.DefaultStyle().Bold().Underline(),
		HelpKey:      backend.DefaultStyle().Foreground(backend.ColorRed),
		FooterEvents: backend.DefaultStyle().Bold(),
	}
}
