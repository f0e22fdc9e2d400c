package purge

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ConfirmWord is the literal the operator must type.
const ConfirmWord = "DELETE"

// Confirmer asks the operator whether to go ahead.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// PromptConfirmer reads the answer from a terminal. It blocks until a line arrives.
type PromptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPromptConfirmer creates a Confirmer reading from in and prompting on out.
func NewPromptConfirmer(in io.Reader, out io.Writer) *PromptConfirmer {
	return &PromptConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm prints prompt and accepts only a line that is exactly ConfirmWord. End of
// input is a decline.
func (c *PromptConfirmer) Confirm(prompt string) (bool, error) {
	if _, err := fmt.Fprint(c.out, prompt); err != nil {
		return false, err
	}

	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return false, nil
	}

	line = strings.TrimRight(line, "\r\n")
	return line == ConfirmWord, nil
}
