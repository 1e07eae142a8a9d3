package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/alnah/go-mdpreview/internal/process"
)

// Sentinel errors for external converter failures.
var (
	ErrBinaryNotFound = errors.New("markdown binary not found")
	ErrExternalFailed = errors.New("markdown binary failed")
)

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, stdin, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
// A cancelled context kills the whole process group of the command.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, stdin, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	process.Isolate(cmd)
	cmd.Cancel = func() error {
		process.KillProcessGroup(cmd.Process.Pid)
		return nil
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// ExternalConverter converts Markdown by piping it through a user-configured
// program (argv[0] plus fixed arguments) and reading HTML from its stdout.
type ExternalConverter struct {
	Argv     []string
	Runner   CommandRunner
	LookPath func(file string) (string, error)
}

// NewExternalConverter creates an ExternalConverter with a real command runner.
func NewExternalConverter(argv []string) *ExternalConverter {
	return &ExternalConverter{
		Argv:     argv,
		Runner:   &ExecRunner{},
		LookPath: exec.LookPath,
	}
}

// ToHTML runs the configured program with content on stdin.
// Returns ErrBinaryNotFound when the program cannot be located and
// ErrExternalFailed, with its stderr, when it exits non-zero.
func (c *ExternalConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if len(c.Argv) == 0 || c.Argv[0] == "" {
		return "", fmt.Errorf("%w: empty command", ErrBinaryNotFound)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := c.Argv[0]
	if c.LookPath != nil {
		resolved, err := c.LookPath(name)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrBinaryNotFound, name, err)
		}
		name = resolved
	}

	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	stdout, stderr, err := c.Runner.Run(ctx, content, name, c.Argv[1:]...)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %s: %s: %v", ErrExternalFailed, c.Argv[0], strings.TrimSpace(stderr), err)
	}
	return stdout, nil
}
