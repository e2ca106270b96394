package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		forced  ColorMode
		signals Signals
		want    Theme
	}{
		{name: "nothing set", want: Light},
		{name: "forced wins over everything", forced: ColorModeLight, signals: Signals{DataTheme: "dark", Classes: []string{"dark"}, PrefersDark: true}, want: Light},
		{name: "data-theme", signals: Signals{DataTheme: "dark", DataBsTheme: "light"}, want: Dark},
		{name: "unknown data-theme falls through", signals: Signals{DataTheme: "auto", DataBsTheme: "dark"}, want: Dark},
		{name: "data-bs-theme before class", signals: Signals{DataBsTheme: "light", Classes: []string{"dark"}}, want: Light},
		{name: "dark class", signals: Signals{Classes: []string{"antialiased", "dark"}}, want: Dark},
		{name: "dark class beats light class", signals: Signals{Classes: []string{"light", "dark"}}, want: Dark},
		{name: "light class beats preference", signals: Signals{Classes: []string{"light"}, PrefersDark: true}, want: Light},
		{name: "class tokens are exact", signals: Signals{Classes: []string{"darkmode"}}, want: Light},
		{name: "preference", signals: Signals{PrefersDark: true}, want: Dark},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.forced, tt.signals))
		})
	}
}

func TestParseColorMode(t *testing.T) {
	assert.Equal(t, ColorModeDark, ParseColorMode(" Dark "))
	assert.Equal(t, ColorModeLight, ParseColorMode("light"))
	assert.Equal(t, ColorModeNone, ParseColorMode("auto"))
	assert.Equal(t, ColorModeNone, ParseColorMode(""))
}

func TestSplitClasses(t *testing.T) {
	assert.Equal(t, []string{"a", "dark"}, SplitClasses("  a\tdark "))
	assert.Empty(t, SplitClasses(""))
}
