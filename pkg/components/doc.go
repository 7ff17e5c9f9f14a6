// Package components groups the leaf components the Fabricator core
// registers at startup: logger (LOGGER), network (NETWORK), screen (SCREEN)
// and iostream (IOSTREAM). None of them depends on another; each talks to
// the outside world only through a display.Surface or an io.Reader.
package components
