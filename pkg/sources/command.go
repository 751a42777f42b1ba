package sources

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// commandReader streams a child process's stdout. Close waits for the process
// and reports a non-zero exit as an error.
type commandReader struct {
	io.ReadCloser
	cmd    *exec.Cmd
	stderr *bytes.Buffer
	name   string
}

func startCommand(ctx context.Context, dir, name string, args ...string) (*commandReader, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %q: %w", name, err)
	}
	return &commandReader{ReadCloser: stdout, cmd: cmd, stderr: &stderr, name: name}, nil
}

func (c *commandReader) Close() error {
	// Wait closes the pipe, so drain whatever the reader left behind first.
	_, _ = io.Copy(io.Discard, c.ReadCloser)
	if err := c.cmd.Wait(); err != nil {
		if msg := strings.TrimSpace(c.stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", c.name, err, msg)
		}
		return fmt.Errorf("%s: %w", c.name, err)
	}
	return nil
}
