// Package screen implements the SCREEN component: clearing the display and
// drawing the input prompt.
package screen

import (
	"github.com/germanamz/fabricator/pkg/component"
	"github.com/germanamz/fabricator/pkg/display"
)

// Name is the registry name of the screen component.
const Name = "SCREEN"

// DefaultPrompt is drawn before every input line.
const DefaultPrompt = "<fabricatorguest>> "

// Screen owns the visible surface.
type Screen struct {
	component.Lifecycle

	out    display.Surface
	prompt string
}

// New creates a Screen drawing prompt on out. An empty prompt falls back to
// DefaultPrompt.
func New(out display.Surface, prompt string) *Screen {
	if prompt == "" {
		prompt = DefaultPrompt
	}

	return &Screen{out: out, prompt: prompt}
}

func (s *Screen) Initialize() bool { return s.Start(nil) }

func (s *Screen) Name() string { return Name }

func (s *Screen) Update() {}

// Clear wipes the display.
func (s *Screen) Clear() { s.out.Clear() }

// DrawPrompt prints the prompt without a trailing newline.
func (s *Screen) DrawPrompt() { s.out.Print(s.prompt) }
