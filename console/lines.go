// Package console drives the receptionist from a terminal: typed lines
// stand in for speech, the wake phrase and the badge camera.
package console

import (
	"bufio"
	"io"
	"strings"
)

// Lines reads a text stream one line at a time in the background.
type Lines struct {
	ch   chan string
	done chan struct{}
}

// NewLines starts reading r.
func NewLines(r io.Reader) *Lines {
	l := &Lines{ch: make(chan string), done: make(chan struct{})}
	go func() {
		defer close(l.done)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			l.ch <- strings.TrimSpace(scanner.Text())
		}
	}()
	return l
}

// Done is closed once the input is exhausted.
func (l *Lines) Done() <-chan struct{} {
	return l.done
}
