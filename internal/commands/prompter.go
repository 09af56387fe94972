package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// ErrBadInput is returned when a typed value cannot be parsed.
var ErrBadInput = errors.New("invalid input")

type lineResult struct {
	text string
	err  error
}

// Prompter writes prompts and reads answers one line at a time. Reading happens
// on a separate goroutine so a blocked read never holds up cancellation. Close
// releases that goroutine once its current read returns.
type Prompter struct {
	out   io.Writer
	lines chan lineResult
	done  chan struct{}
	once  sync.Once
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		out:   out,
		lines: make(chan lineResult),
		done:  make(chan struct{}),
	}
	go p.scan(in)
	return p
}

// Close stops delivering input. Ask returns io.EOF afterwards.
func (p *Prompter) Close() {
	p.once.Do(func() { close(p.done) })
}

func (p *Prompter) scan(in io.Reader) {
	defer close(p.lines)
	r := bufio.NewReader(in)
	for {
		s, err := r.ReadString('\n')
		if s != "" && !p.send(lineResult{text: s}) {
			return
		}
		if err != nil {
			p.send(lineResult{err: err})
			return
		}
	}
}

func (p *Prompter) send(res lineResult) bool {
	select {
	case p.lines <- res:
		return true
	case <-p.done:
		return false
	}
}

// Ask prints prompt and returns the next line with surrounding whitespace removed.
// It returns io.EOF once input is exhausted.
func (p *Prompter) Ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-p.done:
		return "", io.EOF
	case res, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.text), nil
	}
}

// AskID prompts for a student id.
func (p *Prompter) AskID(ctx context.Context, prompt string) (int64, error) {
	s, err := p.Ask(ctx, prompt)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrBadInput, "%q is not a student id", s)
	}
	return id, nil
}
