// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorMode controls when ANSI color codes are used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // detect based on terminal and NO_COLOR
	ColorAlways                  // always use colors
	ColorNever                   // never use colors
)

// ParseColorMode converts the names auto, always and never into a ColorMode.
// Any other name is reported as invalid.
func ParseColorMode(name string) (ColorMode, bool) {
	switch name {
	case "", "auto":
		return ColorAuto, true
	case "always":
		return ColorAlways, true
	case "never":
		return ColorNever, true
	default:
		return ColorAuto, false
	}
}

// palette holds the colors used for each part of a diagnostic.
type palette struct {
	severity  map[Severity]*color.Color
	bold      *color.Color
	gutter    *color.Color
	underline *color.Color
	note      *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		severity: map[Severity]*color.Color{
			SeverityError: mk(color.FgRed, color.Bold),
			SeverityNote:  mk(color.FgCyan, color.Bold),
		},
		bold:      mk(color.Bold),
		gutter:    mk(color.FgBlue, color.Bold),
		underline: mk(color.FgRed, color.Bold),
		note:      mk(color.FgCyan, color.Bold),
	}
}

// choosePalette selects the appropriate color palette based on the mode
// and the output writer.
func choosePalette(mode ColorMode, w io.Writer) palette {
	switch mode {
	case ColorAlways:
		return newPalette(true)
	case ColorNever:
		return newPalette(false)
	default: // ColorAuto
		if os.Getenv("NO_COLOR") != "" {
			return newPalette(false)
		}
		return newPalette(isTerminal(w))
	}
}

// isTerminal reports whether w is a file connected to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
