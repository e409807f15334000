package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Invocation describes one external tool run.
type Invocation struct {
	// Release selects the release profile (--release).
	Release bool

	// Target is the cross-compilation target triple, passed through
	// verbatim as the value of --target. Empty means the tool's default.
	Target string

	// ExtraArgs are appended after the recipe-derived arguments.
	ExtraArgs []string
}

// Args returns the tool argument list for the invocation.
func (inv Invocation) Args() []string {
	args := []string{"build"}
	if inv.Release {
		args = append(args, "--release")
	}
	if inv.Target != "" {
		args = append(args, "--target", inv.Target)
	}
	return append(args, inv.ExtraArgs...)
}

// Output captures the result of a tool invocation.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Invoker runs the external build tool.
type Invoker interface {
	// Invoke runs the tool once with the arguments derived from inv.
	// A non-zero tool exit is not an error; it is reported in Output.
	Invoke(ctx context.Context, inv Invocation) (*Output, error)
}

// ExitCodeError carries the external tool's non-zero exit code so the
// process can exit with the same status.
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("build tool exited with code %d", e.Code)
}

// CrossInvoker invokes the configured tool binary (cross by default).
type CrossInvoker struct {
	// Tool is the binary name or path to invoke.
	Tool string

	// Dir is the working directory for the invocation. Empty means the
	// current directory.
	Dir string

	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Invoke runs `<tool> build [--release] [--target <triple>]` exactly once,
// streaming stdout/stderr to the configured writers while capturing them.
func (c *CrossInvoker) Invoke(ctx context.Context, inv Invocation) (*Output, error) {
	toolBin, err := exec.LookPath(c.Tool)
	if err != nil {
		return nil, fmt.Errorf("locating build tool %q: %w", c.Tool, err)
	}

	cmd := exec.CommandContext(ctx, toolBin, inv.Args()...)
	cmd.Dir = c.Dir
	cmd.Stdin = os.Stdin

	stdout := c.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := c.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = io.MultiWriter(stdout, &stdoutBuf)
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	err = cmd.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		return output, fmt.Errorf("executing build tool %q: %w", c.Tool, err)
	}

	output.ExitCode = 0
	return output, nil
}
