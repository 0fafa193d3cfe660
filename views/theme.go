package views

import (
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Palette holds the colors of one scheme. The zero value renders plain text.
type Palette struct {
	Title   *color.Color
	Accent  *color.Color
	Muted   *color.Color
	Error   *color.Color
	Success *color.Color
}

var (
	Light = Palette{
		Title:   forced(color.Bold, color.FgBlue),
		Accent:  forced(color.FgMagenta),
		Muted:   forced(color.FgHiBlack),
		Error:   forced(color.FgRed),
		Success: forced(color.FgGreen),
	}
	Dark = Palette{
		Title:   forced(color.Bold, color.FgHiMagenta),
		Accent:  forced(color.FgHiYellow),
		Muted:   forced(color.FgWhite),
		Error:   forced(color.FgHiRed),
		Success: forced(color.FgHiGreen),
	}
	Plain = Palette{}
)

// forced colors always paint; whether to use them at all is PaletteFor's call.
func forced(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// ColorEnabled reports whether w is a terminal that should get colors.
// color.NoColor (NO_COLOR, TERM=dumb, redirected stdout) turns them off everywhere.
func ColorEnabled(w io.Writer) bool {
	if color.NoColor {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PaletteFor picks the scheme for the current mode.
func PaletteFor(dark, noColor bool) Palette {
	switch {
	case noColor:
		return Plain
	case dark:
		return Dark
	default:
		return Light
	}
}

func (p Palette) paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}
