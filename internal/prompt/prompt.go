// Package prompt implements the interactive console used for first-run setup:
// line input with defaults and yes/no confirmations over injectable streams.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ErrInterrupted is returned when input is cancelled or stdin is closed.
var ErrInterrupted = errors.New("interrupted")

// Console reads answers from in and writes prompts to out.
type Console struct {
	reader    *bufio.Reader
	out       io.Writer
	highlight *color.Color
}

type lineResult struct {
	line string
	err  error
}

// NewConsole creates a console over the given streams.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		reader:    bufio.NewReader(in),
		out:       out,
		highlight: color.New(color.FgCyan, color.Bold),
	}
}

// Printf writes a formatted message to the console output.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// Println writes a line to the console output.
func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

// Ask prints question and returns the trimmed answer.
func (c *Console) Ask(ctx context.Context, question string) (string, error) {
	c.highlight.Fprint(c.out, question)
	return c.readLine(ctx)
}

// AskDefault is Ask with def returned for an empty answer.
func (c *Console) AskDefault(ctx context.Context, question, def string) (string, error) {
	answer, err := c.Ask(ctx, question)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question. Only "y" or "yes" (any case) count as yes.
func (c *Console) Confirm(ctx context.Context, question string) (bool, error) {
	answer, err := c.Ask(ctx, question+" (y/n)? ")
	if err != nil {
		return false, err
	}
	return IsYes(answer), nil
}

// IsYes reports whether answer is an affirmative reply.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// readLine waits for one line of input or for ctx to be cancelled.
func (c *Console) readLine(ctx context.Context) (string, error) {
	results := make(chan lineResult, 1)
	go func() {
		line, err := c.reader.ReadString('\n')
		results <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		c.Println()
		return "", ErrInterrupted
	case r := <-results:
		if r.err != nil {
			if errors.Is(r.err, io.EOF) {
				if r.line != "" {
					return strings.TrimSpace(r.line), nil
				}
				return "", ErrInterrupted
			}
			return "", fmt.Errorf("read input: %w", r.err)
		}
		return strings.TrimSpace(r.line), nil
	}
}
