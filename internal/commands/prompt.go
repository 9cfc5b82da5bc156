package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// errNoTerminal is returned when a password is needed but stdin is not a
// terminal.
var errNoTerminal = errors.New("stdin is not a terminal")

// readPassword prompts on errOut and reads a line from the terminal
// without echo. Tests replace it.
var readPassword = func(prompt string, errOut io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errNoTerminal
	}
	fmt.Fprint(errOut, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(errOut)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// SetPasswordReader replaces the password prompt and returns a func that
// restores the previous one (for testing).
func SetPasswordReader(fn func(prompt string, errOut io.Writer) (string, error)) (restore func()) {
	prev := readPassword
	readPassword = fn
	return func() { readPassword = prev }
}

// promptIfEmpty fills *v from the terminal when it is empty.
func promptIfEmpty(v *string, prompt, flagName string, errOut io.Writer) error {
	if *v != "" {
		return nil
	}
	s, err := readPassword(prompt, errOut)
	if errors.Is(err, errNoTerminal) {
		return fmt.Errorf("%s required", flagName)
	}
	if err != nil {
		return err
	}
	*v = s
	return nil
}
