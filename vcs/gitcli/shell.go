package gitcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// CommandContext builds the git process. Tests may replace it.
var CommandContext = exec.CommandContext

func (g *Git) call(ctx context.Context, args []string) ([]byte, error) {
	cmdline := ArgsString(args)
	g.cfg.Logger().Debug("exec", "cmd", "git "+cmdline, "dir", g.wd)
	cmd := CommandContext(ctx, "git", args...)
	cmd.Dir = g.wd

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && msg != "" {
			return nil, fmt.Errorf("git %s: exit %d: %s", cmdline, exitErr.ExitCode(), msg)
		}
		return nil, fmt.Errorf("git %s: %w", cmdline, err)
	}
	return stdout.Bytes(), nil
}

// ArgsString returns a string suitable for copy/paste into the terminal.
func ArgsString(args []string) string {
	var sb strings.Builder
	for i, arg := range args {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if arg == "" || strings.ContainsAny(arg, " \t\n\"'\x1f\x1e") {
			sb.WriteString(strconv.Quote(arg))
			continue
		}
		sb.WriteString(arg)
	}
	return sb.String()
}
