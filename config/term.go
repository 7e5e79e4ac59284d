package config

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// TerminalIO is the set of streams a command reads from and writes to.
type TerminalIO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

var DefaultTermIO = TerminalIO{
	Stdin:  os.Stdin,
	Stdout: os.Stdout,
	Stderr: os.Stderr,
}

func (t *TerminalIO) Printf(msg string, args ...interface{}) {
	fmt.Fprintf(t.Stdout, msg, args...)
}

// StdoutIsTerminal reports whether stdout is an interactive terminal.
func (t *TerminalIO) StdoutIsTerminal() bool {
	return isTerminal(t.Stdout)
}

// StdinIsTerminal reports whether stdin is an interactive terminal, as
// opposed to a pipe or file.
func (t *TerminalIO) StdinIsTerminal() bool {
	return isTerminal(t.Stdin)
}

func isTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
