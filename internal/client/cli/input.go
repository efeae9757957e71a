package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// GetPassword prints a password prompt to w and reads a password from fd
// without echo. A newline is printed after the read to keep the UI tidy.
func GetPassword(fd int, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, "Password: "); err != nil {
		return "", err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	defer clear(pw)
	return strings.TrimRight(string(pw), "\r\n"), nil
}

var errNotTerminal = errors.New("stdin is not a terminal")

// terminalPrompt returns a prompt reading from in when it is a terminal.
func terminalPrompt(in *os.File, w io.Writer) func() (string, error) {
	return func() (string, error) {
		fd := int(in.Fd())
		if !isTerminal(fd) {
			return "", errNotTerminal
		}
		return GetPassword(fd, w)
	}
}
