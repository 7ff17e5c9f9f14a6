// Package core is the Fabricator shell itself. A Core owns the component
// registry and the standard components, runs the initialize → loop →
// shutdown lifecycle and dispatches each input line to a built-in command.
//
// Everything runs on the caller's goroutine: reading a line, dispatching it,
// ticking every component and the idle wait happen strictly in sequence.
package core
