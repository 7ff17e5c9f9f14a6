// Package iostream implements the IOSTREAM component, the shell's line
// reader.
package iostream

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/germanamz/fabricator/pkg/component"
)

// Name is the registry name of the iostream component.
const Name = "IOSTREAM"

type readResult struct {
	line string
	err  error
}

// IOStream reads input one line at a time.
//
// Lines are pulled from the underlying reader by a single background
// goroutine, started on the first ReadLine, so a blocked read can be
// abandoned when the caller's context is cancelled. The goroutine only reads
// when a ReadLine asks for a line, so nothing past the last returned line is
// consumed. It ends on Shutdown or when the reader returns an error
// (including io.EOF).
type IOStream struct {
	component.Lifecycle

	in       *bufio.Reader
	start    sync.Once
	stop     sync.Once
	requests chan struct{}
	lines    chan readResult
	done     chan struct{} // closed by Shutdown
	stopped  chan struct{} // closed when the reader goroutine returns
}

// New creates an IOStream reading from r.
func New(r io.Reader) *IOStream {
	return &IOStream{
		in:       bufio.NewReader(r),
		requests: make(chan struct{}),
		lines:    make(chan readResult),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

func (s *IOStream) Initialize() bool { return s.Start(nil) }

func (s *IOStream) Name() string { return Name }

func (s *IOStream) Update() {}

// Shutdown disables the stream and stops the reader goroutine. A read that
// is blocked in the underlying reader ends the goroutine once it returns.
func (s *IOStream) Shutdown() {
	s.stop.Do(func() { close(s.done) })
	s.Lifecycle.Shutdown()
}

// ReadLine blocks until one line is available and returns it without the
// trailing line ending. It returns io.EOF once input is exhausted or the
// stream has been shut down, and ctx.Err() if ctx is cancelled first.
func (s *IOStream) ReadLine(ctx context.Context) (string, error) {
	s.start.Do(func() { go s.pump() })

	select {
	case s.requests <- struct{}{}:
	case <-s.stopped:
		return "", io.EOF
	case <-s.done:
		return "", io.EOF
	case <-ctx.Done():
		return "", ctx.Err()
	}

	select {
	case r := <-s.lines:
		return r.line, r.err
	case <-s.stopped:
		return "", io.EOF
	case <-s.done:
		return "", io.EOF
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *IOStream) pump() {
	defer close(s.stopped)

	var pending error
	for {
		select {
		case <-s.requests:
		case <-s.done:
			return
		}

		if pending != nil {
			s.send(readResult{err: pending})
			return
		}

		line, err := s.in.ReadString('\n')
		if err != nil && line == "" {
			if !errors.Is(err, io.EOF) {
				s.send(readResult{err: err})
			}
			return
		}

		if !s.send(readResult{line: trimEOL(line)}) {
			return
		}

		// A partial line was delivered; its error goes to the next request.
		if err != nil && !errors.Is(err, io.EOF) {
			pending = err
		}
	}
}

func (s *IOStream) send(r readResult) bool {
	select {
	case s.lines <- r:
		return true
	case <-s.done:
		return false
	}
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
