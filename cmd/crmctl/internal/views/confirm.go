package views

import (
	"errors"

	"github.com/pterm/pterm"
)

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

func (f ConfirmFunc) Confirm(prompt string) (bool, error) { return f(prompt) }

// AlwaysConfirm answers yes without asking (--yes).
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) (bool, error) { return true, nil })

// ErrConfirmationRequired is returned when a prompt is needed but input is disabled.
var ErrConfirmationRequired = errors.New("confirmation required: re-run with --yes or without --non-interactive")

// NonInteractive refuses every prompt.
var NonInteractive Confirmer = ConfirmFunc(func(string) (bool, error) { return false, ErrConfirmationRequired })

// TerminalConfirmer prompts on the terminal with a yes/no question defaulting to no.
type TerminalConfirmer struct{}

func (TerminalConfirmer) Confirm(prompt string) (bool, error) {
	return pterm.DefaultInteractiveConfirm.
		WithDefaultText(prompt).
		WithDefaultValue(false).
		Show()
}

// ConfirmerFor picks the confirmer for a command: --yes skips the prompt, disabled
// input refuses, otherwise the terminal is asked.
func ConfirmerFor(assumeYes, nonInteractive bool) Confirmer {
	switch {
	case assumeYes:
		return AlwaysConfirm
	case nonInteractive:
		return NonInteractive
	default:
		return TerminalConfirmer{}
	}
}
