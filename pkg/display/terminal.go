package display

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// clearSequence homes the cursor and erases the screen.
const clearSequence = "\x1b[H\x1b[2J"

// Terminal is a Surface backed by an io.Writer, normally os.Stdout. Colour
// and clearing only take effect when the writer is a terminal.
type Terminal struct {
	w        io.Writer
	renderer *lipgloss.Renderer
	tty      bool
	color    bool
	style    Style
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithColor enables or disables colour output. Colour is on by default.
func WithColor(on bool) TerminalOption {
	return func(t *Terminal) { t.color = on }
}

// NewTerminal creates a Terminal writing to w.
func NewTerminal(w io.Writer, opts ...TerminalOption) *Terminal {
	t := &Terminal{
		w:        w,
		renderer: lipgloss.NewRenderer(w),
		tty:      isTerminal(w),
		color:    true,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Prepare performs the one-time console setup needed before writing. It is
// a no-op when the writer is not a terminal.
func (t *Terminal) Prepare() error {
	if !t.tty {
		return nil
	}

	if err := prepareConsole(); err != nil {
		return fmt.Errorf("display: prepare console: %w", err)
	}

	return nil
}

func (t *Terminal) Print(s string) {
	_, _ = io.WriteString(t.w, t.render(s))
}

func (t *Terminal) Println(s string) {
	_, _ = io.WriteString(t.w, t.render(s)+"\n")
}

func (t *Terminal) Clear() {
	if !t.tty {
		return
	}

	_, _ = io.WriteString(t.w, clearSequence)
}

func (t *Terminal) SetStyle(st Style) { t.style = st }

func (t *Terminal) ResetStyle() { t.style = Default }

func (t *Terminal) render(s string) string {
	if !t.color || !t.tty || s == "" {
		return s
	}

	c, ok := styleColors[t.style]
	if !ok {
		return s
	}

	return t.renderer.NewStyle().Foreground(c).Render(s)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	//nolint:gosec // file descriptors are small non-negative ints.
	return term.IsTerminal(int(f.Fd()))
}
