package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Styles colors CLI output. Without a terminal every method returns its
// input unchanged.
type Styles struct {
	profile termenv.Profile
}

// NewStyles detects the color profile of out.
func NewStyles(out *os.File) Styles {
	if !IsTerminal(out) {
		return Styles{profile: termenv.Ascii}
	}
	return Styles{profile: termenv.NewOutput(out).ColorProfile()}
}

func (s Styles) paint(text, hex string) string {
	return s.profile.String(text).Foreground(s.profile.Color(hex)).String()
}

// Success styles a done notification.
func (s Styles) Success(text string) string { return s.paint(text, "#34d399") }

// Failure styles an error notification.
func (s Styles) Failure(text string) string { return s.paint(text, "#fb7185") }

// Muted styles secondary information.
func (s Styles) Muted(text string) string { return s.paint(text, "#94a3b8") }

// Label styles a key in key/value output.
func (s Styles) Label(text string) string {
	return s.profile.String(text).Foreground(s.profile.Color("#818cf8")).Bold().String()
}

// PrintBanner writes the serve banner.
func PrintBanner(w io.Writer, s Styles, addr string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.Label("  javelin")+" "+s.Muted("envelope server"))
	fmt.Fprintln(w, "  "+s.Muted("listening on ")+addr)
	fmt.Fprintln(w)
}
