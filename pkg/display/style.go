package display

import "github.com/charmbracelet/lipgloss"

// Style is a console text colour.
type Style int

const (
	Default Style = iota
	Black
	White
	Green
	Yellow
	Red
	Blue
	Cyan
	Magenta
	BrightGreen
	BrightYellow
	BrightRed
	BrightBlue
	BrightCyan
	BrightMagenta
)

// ANSI 16-colour palette indexes.
var styleColors = map[Style]lipgloss.Color{
	Black:         lipgloss.Color("0"),
	Red:           lipgloss.Color("1"),
	Green:         lipgloss.Color("2"),
	Yellow:        lipgloss.Color("3"),
	Blue:          lipgloss.Color("4"),
	Magenta:       lipgloss.Color("5"),
	Cyan:          lipgloss.Color("6"),
	BrightRed:     lipgloss.Color("9"),
	BrightGreen:   lipgloss.Color("10"),
	BrightYellow:  lipgloss.Color("11"),
	BrightBlue:    lipgloss.Color("12"),
	BrightMagenta: lipgloss.Color("13"),
	BrightCyan:    lipgloss.Color("14"),
	White:         lipgloss.Color("15"),
}

var styleNames = map[Style]string{
	Default:       "default",
	Black:         "black",
	White:         "white",
	Green:         "green",
	Yellow:        "yellow",
	Red:           "red",
	Blue:          "blue",
	Cyan:          "cyan",
	Magenta:       "magenta",
	BrightGreen:   "bright-green",
	BrightYellow:  "bright-yellow",
	BrightRed:     "bright-red",
	BrightBlue:    "bright-blue",
	BrightCyan:    "bright-cyan",
	BrightMagenta: "bright-magenta",
}

func (s Style) String() string {
	if n, ok := styleNames[s]; ok {
		return n
	}

	return "default"
}

// ParseStyle returns the style named n, or Default and false.
func ParseStyle(n string) (Style, bool) {
	for st, name := range styleNames {
		if name == n {
			return st, true
		}
	}

	return Default, false
}
