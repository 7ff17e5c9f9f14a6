// Package display is the output surface the shell writes to. Terminal renders
// to a real console (colour through lipgloss, ANSI clear) and Recorder keeps
// everything in memory so the core can be tested without one.
package display

// Surface is the display collaborator used by the core and the components.
type Surface interface {
	// Print writes s without a trailing newline.
	Print(s string)

	// Println writes s followed by a newline.
	Println(s string)

	// Clear wipes the visible screen.
	Clear()

	// SetStyle sets the style applied to subsequent writes.
	SetStyle(st Style)

	// ResetStyle restores the default style.
	ResetStyle()
}
