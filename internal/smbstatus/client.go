// Package smbstatus invokes the smbstatus binary and parses its text
// output into typed records. The output format is not a stable API:
// column separators vary, banners and headers are interleaved with data
// rows, and timestamps are locale dependent, so the client pins the
// subprocess locale and the parsers filter aggressively.
package smbstatus

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/majerti/smbstats/internal/host"
)

// DefaultBinary is where distributions install smbstatus.
const DefaultBinary = "/usr/bin/smbstatus"

// Client runs smbstatus subcommands and returns their decoded output.
type Client struct {
	exec       host.Exec
	binary     string
	fixtureDir string // non-empty switches to fixture mode (no subprocess)
	log        *slog.Logger
}

// NewClient creates a client that invokes binary through exec. An empty
// binary falls back to DefaultBinary.
func NewClient(exec host.Exec, binary string) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Client{
		exec:   exec,
		binary: binary,
		log:    slog.Default().With("component", "smbstatus"),
	}
}

// UseFixtures switches the client to read sample.smbstatus.<subcommand>
// files from dir instead of invoking the binary.
func (c *Client) UseFixtures(dir string) {
	c.fixtureDir = dir
}

// Run executes `smbstatus --<subcommand> -d 0` and returns its output as
// decoded lines. Output goes through a temporary file rather than a pipe
// so the full stream is flushed before being read back; the temp directory
// is removed on both the success and the error path. A non-zero exit
// yields a *CommandError.
func (c *Client) Run(ctx context.Context, subcommand string) ([]string, error) {
	if c.fixtureDir != "" {
		name := filepath.Join(c.fixtureDir, "sample.smbstatus."+subcommand)
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read fixture: %w", err)
		}
		return decodeLines(data), nil
	}

	tempDir, err := os.MkdirTemp("", "smbstats")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tempDir)

	outFile := filepath.Join(tempDir, "smbstatus."+subcommand)
	command := fmt.Sprintf("%s --%s -d 0 > %s", c.binary, subcommand, outFile)

	// Month and weekday names in the output must not follow the host
	// locale, the date parser only knows English abbreviations.
	result := c.exec.Run(ctx, command, []string{"LC_ALL=en_US.UTF-8"})
	if result.ExitCode != 0 {
		c.log.Debug("smbstatus exited non-zero",
			"subcommand", subcommand, "exit_code", result.ExitCode)
		return nil, &CommandError{Stderr: result.Stderr}
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		return nil, err
	}
	return decodeLines(data), nil
}

// decodeLines splits raw output into lines, decoding each one permissively.
func decodeLines(data []byte) []string {
	data = bytes.TrimSuffix(data, []byte("\n"))
	if len(data) == 0 {
		return nil
	}

	raw := bytes.Split(data, []byte("\n"))
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		lines = append(lines, decodeLine(line))
	}
	return lines
}

// decodeLine decodes one line as UTF-8, falling back to Latin-1. Every
// byte sequence decodes to some string; decoding never fails.
func decodeLine(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		// Latin-1 maps all 256 byte values, this branch is unreachable.
		return string(raw)
	}
	return string(decoded)
}
