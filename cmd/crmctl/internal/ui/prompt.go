package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// ErrInputRequired is returned when a value is missing and prompting is disabled.
var ErrInputRequired = errors.New("missing required input")

// Prompter reads values that were not given as flags.
type Prompter struct {
	NonInteractive bool
}

// Text returns current when set, otherwise asks for label.
func (p Prompter) Text(label, current string) (string, error) {
	if current != "" {
		return current, nil
	}
	if p.NonInteractive {
		return "", fmt.Errorf("%w: %s", ErrInputRequired, label)
	}
	return pterm.DefaultInteractiveTextInput.Show(label)
}

// Password returns current when set, otherwise reads a hidden value from the terminal.
func (p Prompter) Password(label, current string) (string, error) {
	if current != "" {
		return current, nil
	}
	if p.NonInteractive {
		return "", fmt.Errorf("%w: %s", ErrInputRequired, label)
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("%w: %s (stdin is not a terminal; use --password-stdin)", ErrInputRequired, label)
	}
	fmt.Fprintf(os.Stderr, "%s: ", label)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

// ReadSecret reads the first line of r, as used by --password-stdin.
func ReadSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password from stdin: %w", err)
	}
	secret := strings.TrimRight(line, "\r\n")
	if secret == "" {
		return "", fmt.Errorf("%w: password on stdin", ErrInputRequired)
	}
	return secret, nil
}
