package geolocation

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Prompter asks the user whether the app may read the device location
type Prompter interface {
	Prompt(ctx context.Context) (bool, error)
}

// PrompterFunc adapts a function to Prompter
type PrompterFunc func(ctx context.Context) (bool, error)

func (f PrompterFunc) Prompt(ctx context.Context) (bool, error) {
	return f(ctx)
}

var (
	// Allow grants permission without asking
	Allow Prompter = PrompterFunc(func(context.Context) (bool, error) { return true, nil })
	// Deny refuses permission without asking
	Deny Prompter = PrompterFunc(func(context.Context) (bool, error) { return false, nil })
)

// TerminalPrompter asks a yes/no question on a terminal.
// A prompt abandoned by its caller keeps its pending read; the next Prompt waits on that same read.
type TerminalPrompter struct {
	in       *bufio.Reader
	out      io.Writer
	Question string

	mu      sync.Mutex
	pending chan answer
}

type answer struct {
	line string
	err  error
}

// NewTerminalPrompter creates a prompter reading answers from in and writing the question to out
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{
		in:       bufio.NewReader(in),
		out:      out,
		Question: "Allow this app to access your location?",
	}
}

// Prompt blocks until an answer line is read or ctx is done. Only "y" or "yes" grants.
func (p *TerminalPrompter) Prompt(ctx context.Context) (bool, error) {
	ch, err := p.read()
	if err != nil {
		return false, err
	}

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case a := <-ch:
		p.mu.Lock()
		if p.pending == ch {
			p.pending = nil
		}
		p.mu.Unlock()

		if a.err != nil && a.line == "" {
			return false, a.err
		}
		switch strings.ToLower(strings.TrimSpace(a.line)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	}
}

// read asks the question and returns the channel the answer will arrive on,
// starting a reader only when none is outstanding
func (p *TerminalPrompter) read() (chan answer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := fmt.Fprintf(p.out, "%s [y/N] ", p.Question); err != nil {
		return nil, err
	}
	if p.pending != nil {
		return p.pending, nil
	}

	ch := make(chan answer, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		ch <- answer{line, err}
	}()
	p.pending = ch
	return ch, nil
}
