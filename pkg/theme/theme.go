// Package theme holds the named visual styles of the app and renders text in
// them with terminal colours.
package theme

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
)

const DefaultID = "default"

var ErrUnknownTheme = errors.New("unknown theme")

type Theme struct {
	ID   string
	Name string

	Primary []color.Attribute
	Accent  []color.Attribute
	Text    []color.Attribute
	Muted   []color.Attribute
}

var themes = []Theme{
	{
		ID:      "default",
		Name:    "راوي (الافتراضي)",
		Primary: []color.Attribute{color.FgHiBlue, color.Bold},
		Accent:  []color.Attribute{color.FgBlue},
		Text:    []color.Attribute{color.FgBlack},
		Muted:   []color.Attribute{color.FgHiBlack},
	},
	{
		ID:      "dark",
		Name:    "الوضع الليلي",
		Primary: []color.Attribute{color.FgHiCyan, color.Bold},
		Accent:  []color.Attribute{color.FgCyan},
		Text:    []color.Attribute{color.FgHiWhite},
		Muted:   []color.Attribute{color.FgWhite},
	},
	{
		ID:      "coffee",
		Name:    "مزاج القهوة",
		Primary: []color.Attribute{color.FgYellow, color.Bold},
		Accent:  []color.Attribute{color.FgRed},
		Text:    []color.Attribute{color.FgYellow},
		Muted:   []color.Attribute{color.FgHiBlack, color.Italic},
	},
	{
		ID:      "kids",
		Name:    "عالم الأطفال",
		Primary: []color.Attribute{color.FgHiMagenta, color.Bold},
		Accent:  []color.Attribute{color.FgHiYellow},
		Text:    []color.Attribute{color.FgMagenta},
		Muted:   []color.Attribute{color.FgHiMagenta, color.Faint},
	},
}

// List returns the themes in display order.
func List() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// Get returns the theme with id. Unknown ids get the default theme and ErrUnknownTheme.
func Get(id string) (Theme, error) {
	for _, t := range themes {
		if t.ID == id {
			return t, nil
		}
	}
	return themes[0], fmt.Errorf("%w: %q", ErrUnknownTheme, id)
}

func Default() Theme {
	return themes[0]
}

func (t Theme) paint(attrs []color.Attribute, format string, a ...interface{}) string {
	return color.New(attrs...).Sprintf(format, a...)
}

func (t Theme) Title(format string, a ...interface{}) string {
	return t.paint(t.Primary, format, a...)
}

func (t Theme) Highlight(format string, a ...interface{}) string {
	return t.paint(t.Accent, format, a...)
}

func (t Theme) Body(format string, a ...interface{}) string {
	return t.paint(t.Text, format, a...)
}

func (t Theme) Dim(format string, a ...interface{}) string {
	return t.paint(t.Muted, format, a...)
}
