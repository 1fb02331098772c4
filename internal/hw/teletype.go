package hw

import (
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

const ansiReset = "\033[2J\033[H"

// Teletype is the host side of the teletype register. Bytes are echoed to an
// output stream and the most recent lines are kept for on-screen consoles.
type Teletype struct {
	mu      sync.Mutex
	out     io.Writer
	tty     bool
	history int
	lines   []string
	cur     []byte
	written uint64
}

// NewTeletype creates a teletype writing to out (nil discards) and keeping up
// to history completed lines.
func NewTeletype(out io.Writer, history int) *Teletype {
	if out == nil {
		out = io.Discard
	}
	if history <= 0 {
		history = 1
	}
	t := &Teletype{out: out, history: history}
	if f, ok := out.(*os.File); ok {
		t.tty = term.IsTerminal(int(f.Fd()))
	}
	return t
}

// WriteByte accepts one byte from the register. TerminalReset clears the
// history and, on a real terminal, the screen.
func (t *Teletype) WriteByte(c byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.written++
	switch c {
	case TerminalReset:
		t.lines = t.lines[:0]
		t.cur = t.cur[:0]
		if t.tty {
			_, err := io.WriteString(t.out, ansiReset)
			return err
		}
		return nil
	case '\n':
		t.pushLine()
	case '\r':
	default:
		t.cur = append(t.cur, c)
	}
	_, err := t.out.Write([]byte{c})
	return err
}

func (t *Teletype) pushLine() {
	t.lines = append(t.lines, string(t.cur))
	if over := len(t.lines) - t.history; over > 0 {
		t.lines = append(t.lines[:0], t.lines[over:]...)
	}
	t.cur = t.cur[:0]
}

// Lines returns the retained lines followed by the line in progress.
func (t *Teletype) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.lines)+1)
	out = append(out, t.lines...)
	return append(out, string(t.cur))
}

// Text joins Lines with newlines.
func (t *Teletype) Text() string {
	return strings.Join(t.Lines(), "\n")
}

// Written counts bytes received, reset bytes included.
func (t *Teletype) Written() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.written
}

// IsTerminal reports whether output goes to a terminal.
func (t *Teletype) IsTerminal() bool { return t.tty }
