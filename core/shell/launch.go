package shell

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
)

// Status is the result of running a command: 0-255 for a normal exit or
// NoStatus.
type Status int

const (
	// NoStatus marks a child that didn't exit normally, e.g. it was killed
	// by a signal. Exit codes stop at 255.
	NoStatus Status = 256

	// StatusNotFound is reported when the program doesn't exist.
	StatusNotFound Status = 127
	// StatusNotExecutable is reported for every other spawn failure.
	StatusNotExecutable Status = 126
)

// SpawnError is returned when a child process couldn't be started or
// waited on.
type SpawnError struct {
	Argv []string
	Err  error
}

func (e *SpawnError) Error() string {
	return e.Err.Error()
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Status gets the status reported to the user when the interpreter keeps
// running after the failure.
func (e *SpawnError) Status() Status {
	if errors.Is(e.Err, exec.ErrNotFound) || errors.Is(e.Err, fs.ErrNotExist) {
		return StatusNotFound
	}
	return StatusNotExecutable
}

// Launcher runs external programs.
type Launcher interface {
	// Launch runs argv[0] with the full argv and waits for it to terminate.
	Launch(argv []string) (Status, error)
}

// ExecLauncher starts real processes. Nil streams are replaced by the
// interpreter's own, so children share its terminal.
type ExecLauncher struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

var _ Launcher = (*ExecLauncher)(nil)

func (l *ExecLauncher) Launch(argv []string) (Status, error) {
	if len(argv) == 0 {
		return NoStatus, &SpawnError{Err: errors.New("empty command")}
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if l.Stdin != nil {
		cmd.Stdin = l.Stdin
	}
	if l.Stdout != nil {
		cmd.Stdout = l.Stdout
	}
	if l.Stderr != nil {
		cmd.Stderr = l.Stderr
	}

	if err := cmd.Start(); err != nil {
		return NoStatus, &SpawnError{Argv: argv, Err: err}
	}

	err := cmd.Wait()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return NoStatus, &SpawnError{Argv: argv, Err: fmt.Errorf("wait: %w", err)}
	}

	return statusOf(cmd.ProcessState), nil
}

func statusOf(state *os.ProcessState) Status {
	if state == nil || !state.Exited() {
		return NoStatus
	}
	return Status(state.ExitCode())
}
