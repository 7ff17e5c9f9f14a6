package display

import "strings"

// EventKind identifies what a recorded event did.
type EventKind int

const (
	EventPrint EventKind = iota
	EventPrintln
	EventClear
)

// Event is one call made against a Recorder.
type Event struct {
	Kind  EventKind
	Text  string
	Style Style
}

// Recorder is an in-memory Surface. The zero value is ready to use.
type Recorder struct {
	events []Event
	style  Style
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Print(s string) {
	r.events = append(r.events, Event{Kind: EventPrint, Text: s, Style: r.style})
}

func (r *Recorder) Println(s string) {
	r.events = append(r.events, Event{Kind: EventPrintln, Text: s, Style: r.style})
}

func (r *Recorder) Clear() {
	r.events = append(r.events, Event{Kind: EventClear})
}

func (r *Recorder) SetStyle(st Style) { r.style = st }

func (r *Recorder) ResetStyle() { r.style = Default }

// Events returns every recorded call in order.
func (r *Recorder) Events() []Event {
	out := make([]Event, len(r.events))
	copy(out, r.events)

	return out
}

// Lines returns the text of every Println call in order. Print calls, such
// as the prompt, are left out.
func (r *Recorder) Lines() []string {
	var lines []string
	for _, e := range r.events {
		if e.Kind == EventPrintln {
			lines = append(lines, e.Text)
		}
	}

	return lines
}

// Output returns everything written, as it would appear on a plain console.
func (r *Recorder) Output() string {
	var sb strings.Builder
	for _, e := range r.events {
		switch e.Kind {
		case EventPrint:
			sb.WriteString(e.Text)
		case EventPrintln:
			sb.WriteString(e.Text)
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// Clears reports how many times Clear was called.
func (r *Recorder) Clears() int {
	n := 0
	for _, e := range r.events {
		if e.Kind == EventClear {
			n++
		}
	}

	return n
}

// Reset drops every recorded event.
func (r *Recorder) Reset() { r.events = nil }
