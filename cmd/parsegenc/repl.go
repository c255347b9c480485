package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// commandReader abstracts where REPL input lines come from, mirroring the
// teacher's direct-vs-readline split (internal/input): a plain buffered
// reader for piped/non-tty input, and a GNU-readline-backed reader (with
// history and line editing) when attached to a real terminal.
type commandReader interface {
	ReadCommand() (string, error)
	Close() error
}

type directReader struct {
	r *bufio.Reader
}

func newDirectReader(r io.Reader) *directReader {
	return &directReader{r: bufio.NewReader(r)}
}

func (d *directReader) ReadCommand() (string, error) {
	line, err := d.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (d *directReader) Close() error { return nil }

type interactiveReader struct {
	rl *readline.Instance
}

func newInteractiveReader(prompt string) (*interactiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}
	return &interactiveReader{rl: rl}, nil
}

func (i *interactiveReader) ReadCommand() (string, error) {
	line, err := i.rl.Readline()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (i *interactiveReader) Close() error { return i.rl.Close() }
