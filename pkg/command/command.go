// Package command maps a raw input line to one of the shell's built-in
// commands.
package command

import "strings"

// Type is the closed set of commands the shell understands.
type Type int

const (
	Unknown Type = iota
	Help
	Clear
	Exit
	SystemInfo
	NetworkStatus
)

func (t Type) String() string {
	if s, ok := Lookup(t); ok {
		return s.Name
	}

	return "unknown"
}

// Spec describes one built-in command.
type Spec struct {
	Type        Type
	Name        string   // Canonical spelling, listed by help.
	Aliases     []string // Additional accepted spellings.
	Description string   // Logged on dispatch.
}

// Listed in the order help prints them.
var catalog = []Spec{
	{Type: Help, Name: "help", Aliases: []string{"?"}, Description: "List available commands"},
	{Type: Clear, Name: "clear", Aliases: []string{"cls"}, Description: "Clear the screen"},
	{Type: Exit, Name: "exit", Aliases: []string{"quit"}, Description: "Shut down and leave the shell"},
	{Type: SystemInfo, Name: "info", Aliases: []string{"system"}, Description: "Show version and loaded components"},
	{Type: NetworkStatus, Name: "network", Aliases: []string{"net"}, Description: "Show simulated network status"},
}

// Lookup returns the catalog entry for t. Unknown has none.
func Lookup(t Type) (Spec, bool) {
	for _, s := range catalog {
		if s.Type == t {
			return s, true
		}
	}

	return Spec{}, false
}

// Names returns the canonical command names in help order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, s := range catalog {
		names[i] = s.Name
	}

	return names
}

// HelpLine is the single line printed by the help command.
func HelpLine() string {
	return "Available commands: " + strings.Join(Names(), ", ")
}

var lookup = func() map[string]Type {
	m := make(map[string]Type)
	for _, s := range catalog {
		m[s.Name] = s.Type
		for _, a := range s.Aliases {
			m[a] = s.Type
		}
	}
	return m
}()

// Parse returns the command named by raw. Matching is case-insensitive over
// ASCII only and compares the whole string; surrounding whitespace is not
// trimmed. Anything not in the catalog is Unknown.
func Parse(raw string) Type {
	if t, ok := lookup[asciiLower(raw)]; ok {
		return t
	}

	return Unknown
}

// asciiLower lower-cases A-Z and leaves every other byte untouched, so the
// result never depends on Unicode case tables.
func asciiLower(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'A' || c > 'Z' {
			continue
		}
		if b == nil {
			b = []byte(s)
		}
		b[i] = c + ('a' - 'A')
	}

	if b == nil {
		return s
	}

	return string(b)
}
