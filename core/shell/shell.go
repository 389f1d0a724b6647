package shell

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/josephlewis42/dmsh/core/config"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Shell is the read-dispatch-execute loop.
type Shell struct {
	Config   *config.Configuration
	Reader   LineReader
	Launcher Launcher
	Signals  InterruptSource
	// Fs is used to inspect lone arguments for the viewer rewrite.
	Fs     afero.Fs
	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger

	// Colorize shows the status in the prompt in green or red.
	Colorize bool

	// Exit terminates the interpreter, it must not return.
	Exit func(code int)

	status Status
}

// New creates a shell for the real OS with the given reader. Output goes to
// the process's stdout and stderr.
func New(cfg *config.Configuration, reader LineReader, signals InterruptSource, logger *zap.Logger) *Shell {
	return &Shell{
		Config:   cfg,
		Reader:   reader,
		Launcher: &ExecLauncher{},
		Signals:  signals,
		Fs:       afero.NewOsFs(),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Logger:   logger,
		Exit:     os.Exit,
	}
}

// Status gets the status of the last command.
func (s *Shell) Status() Status {
	return s.status
}

func (s *Shell) prompt() string {
	status := fmt.Sprintf("%d", s.status)
	if s.Colorize {
		c := color.New(color.FgGreen, color.Bold)
		if s.status != 0 {
			c = color.New(color.FgRed, color.Bold)
		}
		c.EnableColor()
		status = c.Sprint(status)
	}

	return fmt.Sprintf("(%s) %s", status, s.Config.Prompt)
}

// Run prints the banner and loops until the input ends on an empty line.
// It returns the interpreter's exit code.
func (s *Shell) Run() int {
	for _, line := range s.Config.Banner {
		fmt.Fprintln(s.Stdout, line)
	}

	var in Interaction
	for {
		line, err := s.Reader.ReadLine(s.prompt(), &in)
		if err != nil {
			s.Logger.Error("read failed", zap.Error(err))
			fmt.Fprintf(s.Stderr, "dmsh: %v\n", err)
			return 1
		}
		s.observeInterrupt(&in)

		status, err := s.Dispatch(Tokenize(line), &in)
		s.status = status
		if err != nil {
			fmt.Fprintf(s.Stderr, "dmsh: %v\n", err)
			if s.Config.FatalSpawnErrors {
				return 1
			}
		}

		// Ctrl+C while a child was running.
		s.observeInterrupt(&in)

		if !s.next(line, &in) {
			break
		}
	}

	fmt.Fprintln(s.Stdout)
	return 0
}

func (s *Shell) observeInterrupt(in *Interaction) {
	if s.Signals != nil && s.Signals.Pending() {
		s.Logger.Debug("interrupt")
		in.Interrupted = true
	}
}

// next decides whether to keep going and clears the iteration state.
func (s *Shell) next(line string, in *Interaction) bool {
	keepGoing := in.Continue(line)
	if in.Interrupted && !in.echoed {
		fmt.Fprintln(s.Stdout)
	}
	in.Reset()
	return keepGoing
}

// Close releases the line reader.
func (s *Shell) Close() error {
	return s.Reader.Close()
}
