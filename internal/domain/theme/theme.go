// Package theme decides whether the menu renders light or dark for a host page.
package theme

import "strings"

// Theme is the resolved color theme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ColorMode is a host-forced color mode. The empty value forces nothing.
type ColorMode string

const (
	ColorModeNone  ColorMode = ""
	ColorModeLight ColorMode = "light"
	ColorModeDark  ColorMode = "dark"
)

// ParseColorMode accepts "light" and "dark"; anything else is ColorModeNone.
func ParseColorMode(s string) ColorMode {
	switch ColorMode(strings.ToLower(strings.TrimSpace(s))) {
	case ColorModeLight:
		return ColorModeLight
	case ColorModeDark:
		return ColorModeDark
	default:
		return ColorModeNone
	}
}

// Signals are the theme hints observed on the host page's <html> element and browser.
type Signals struct {
	DataTheme   string
	DataBsTheme string
	Classes     []string
	PrefersDark bool
}

// Detect resolves the theme. Order: forced mode, data-theme, data-bs-theme,
// a dark or light class, the prefers-color-scheme media query, light.
func Detect(forced ColorMode, signals Signals) Theme {
	if t, ok := fromValue(string(forced)); ok {
		return t
	}
	if t, ok := fromValue(signals.DataTheme); ok {
		return t
	}
	if t, ok := fromValue(signals.DataBsTheme); ok {
		return t
	}
	if hasClass(signals.Classes, "dark") {
		return Dark
	}
	if hasClass(signals.Classes, "light") {
		return Light
	}
	if signals.PrefersDark {
		return Dark
	}
	return Light
}

// SplitClasses splits a class attribute into its tokens.
func SplitClasses(classAttr string) []string {
	return strings.Fields(classAttr)
}

func fromValue(v string) (Theme, bool) {
	switch Theme(v) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	}
	return "", false
}

func hasClass(classes []string, name string) bool {
	for _, c := range classes {
		if c == name {
			return true
		}
	}
	return false
}
