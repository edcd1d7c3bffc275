// Package host wraps the facilities smbstats needs from the machine it
// runs on: shell command execution and mount point resolution.
package host

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Result holds the output of a shell command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Exec runs commands on the host. Collectors receive an Exec instead of
// reaching for os/exec directly so tests can substitute a fake.
type Exec interface {
	Run(ctx context.Context, command string, env []string) Result
	MountPoint(ctx context.Context, path string) (string, error)
}

// DefaultTimeout bounds a single command when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Shell is the production Exec backed by `sh -c`.
type Shell struct {
	Timeout time.Duration
}

// Run executes command through the shell, capturing stdout, stderr and the
// exit code. A command that cannot start or exceeds the timeout reports
// exit code -1.
func (s Shell) Run(ctx context.Context, command string, env []string) Result {
	timeout := s.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}

	return Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MountPoint resolves the filesystem mount point containing path.
func (s Shell) MountPoint(ctx context.Context, path string) (string, error) {
	result := s.Run(ctx, fmt.Sprintf("stat -c '%%m' %s", shellQuote(path)), nil)
	if result.ExitCode != 0 {
		return "", fmt.Errorf("stat %s: %s", path, strings.TrimSpace(result.Stderr))
	}
	return strings.TrimSpace(result.Stdout), nil
}

// shellQuote single-quotes s for the shell so share directories with
// spaces or metacharacters in their names resolve instead of being word
// split or executed.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
