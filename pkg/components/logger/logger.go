// Package logger implements the LOGGER component: tagged console messages
// with an in-memory history.
package logger

import (
	"log/slog"
	"slices"

	"github.com/germanamz/fabricator/pkg/component"
	"github.com/germanamz/fabricator/pkg/display"
)

// Name is the registry name of the logger component.
const Name = "LOGGER"

// Level tags a console message.
type Level int

const (
	Info Level = iota
	Warning
	Error
	Debug
	Network
	System
)

var levels = map[Level]struct {
	prefix string
	style  display.Style
}{
	Info:    {"[INFO]", display.Default},
	Warning: {"[WARN]", display.Yellow},
	Error:   {"[ERROR]", display.Red},
	Debug:   {"[DEBUG]", display.Cyan},
	Network: {"[NET]", display.Blue},
	System:  {"[SYS]", display.Green},
}

// Logger writes tagged messages to a display surface and remembers them.
type Logger struct {
	component.Lifecycle

	out     display.Surface
	log     *slog.Logger
	history []string
}

// New creates a Logger writing to out. Every message is mirrored to log at
// debug level; a nil log discards them.
func New(out display.Surface, log *slog.Logger) *Logger {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Logger{out: out, log: log}
}

func (l *Logger) Initialize() bool { return l.Start(nil) }

func (l *Logger) Name() string { return Name }

func (l *Logger) Update() {}

// Log writes "<prefix> <msg>" in the level's colour and appends it to the
// history.
func (l *Logger) Log(msg string, level Level) {
	lv, ok := levels[level]
	if !ok {
		lv = levels[Info]
	}

	line := lv.prefix + " " + msg
	l.history = append(l.history, line)

	l.out.SetStyle(lv.style)
	l.out.Println(line)
	l.out.ResetStyle()

	l.log.Debug("console message", "prefix", lv.prefix, "message", msg)
}

// History returns every line logged so far, oldest first.
func (l *Logger) History() []string {
	return slices.Clone(l.history)
}
