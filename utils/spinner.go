package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/term"
)

// Terminal colors used by the command line output.
const (
	ErrorColor   = "\x1b[31m"
	SuccessColor = "\x1b[92m"
	DefaultColor = "\x1b[39m"
)

// Spinner shows a progress indicator while a long running operation runs.
type Spinner struct {
	mu         sync.Mutex
	writer     io.Writer
	delay      time.Duration
	lastOutput string
	width      int // visible length of lastOutput
	running    bool
	stopChan   chan struct{}
	doneChan   chan struct{}

	// StopMsg is printed once the spinner stops.
	StopMsg string
}

// NewSpinner returns a spinner writing to w, advancing every delay.
func NewSpinner(w io.Writer, delay time.Duration) *Spinner {
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}
	return &Spinner{writer: w, delay: delay}
}

// IsTerminal reports whether w is attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Start starts the progress indicator. It is a no-op if the spinner is
// already running.
func (s *Spinner) Start(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stopChan = make(chan struct{})
	s.doneChan = make(chan struct{})

	go func(stop, done chan struct{}) {
		defer close(done)
		for {
			for _, r := range `-\|/` {
				select {
				case <-stop:
					return
				default:
				}
				s.mu.Lock()
				s.lastOutput = fmt.Sprintf("\r%s%s %c%s", message, SuccessColor, r, DefaultColor)
				s.width = utf8.RuneCountInString(message) + 2
				fmt.Fprint(s.writer, s.lastOutput)
				s.mu.Unlock()

				select {
				case <-stop:
					return
				case <-time.After(s.delay):
				}
			}
		}
	}(s.stopChan, s.doneChan)
}

// Stop stops the progress indicator, clears its line and prints StopMsg.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopChan)
	done := s.doneChan
	s.mu.Unlock()

	<-done

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
	if s.StopMsg != "" {
		fmt.Fprint(s.writer, s.StopMsg)
	}
}

// clear erases the last line written. Caller must hold the lock.
func (s *Spinner) clear() {
	if s.lastOutput == "" {
		return
	}
	fmt.Fprint(s.writer, "\r"+strings.Repeat(" ", s.width)+"\r")
	s.lastOutput = ""
	s.width = 0
}
