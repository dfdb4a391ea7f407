package driver

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorMode selects whether diagnostics are coloured.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

func ParseColorMode(s string) (ColorMode, error) {
	switch mode := ColorMode(s); mode {
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	case "":
		return ColorAuto, nil
	default:
		return "", fmt.Errorf("unknown color mode %q (want auto, always or never)", s)
	}
}

// String and Set let a ColorMode back a flag.
func (m *ColorMode) String() string { return string(*m) }

func (m *ColorMode) Set(s string) error {
	mode, err := ParseColorMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

type styles struct {
	label   lipgloss.Style
	summary lipgloss.Style
	frame   lipgloss.Style
}

// newStyles binds a renderer to w. In auto mode the renderer inspects w itself, so
// pipes and buffers get plain text.
func newStyles(w io.Writer, mode ColorMode) styles {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}

	return styles{
		label:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		summary: r.NewStyle().Faint(true),
		frame:   r.NewStyle().Foreground(lipgloss.Color("6")),
	}
}
