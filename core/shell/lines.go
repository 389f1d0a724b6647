package shell

import (
	"bufio"
	"io"
	"strings"

	"github.com/abiosoft/readline"
)

// Interaction records how the most recent read ended. It is filled by the
// LineReader and the interrupt source, read by the continuation check and
// reset once per loop iteration.
type Interaction struct {
	// Interrupted is set when an interrupt arrived during the iteration.
	Interrupted bool
	// PressedReturn is true if the line ended with a newline rather than
	// the end of the input stream.
	PressedReturn bool

	// echoed is set when the reader already moved the cursor to a fresh
	// line after an interrupt.
	echoed bool
}

// Continue reports whether the loop keeps running after line was read.
// Only the end of the stream on an empty, uninterrupted line stops it.
func (in *Interaction) Continue(line string) bool {
	return line != "" || in.Interrupted || in.PressedReturn
}

// Reset clears the per-iteration state.
func (in *Interaction) Reset() {
	*in = Interaction{}
}

// LineReader acquires a single line of input.
type LineReader interface {
	// ReadLine writes prompt, then reads up to a newline or the end of the
	// stream. The newline is not part of the result. How the read ended is
	// recorded in in.
	ReadLine(prompt string, in *Interaction) (string, error)

	io.Closer
}

type streamReader struct {
	r *bufio.Reader
	w io.Writer
}

var _ LineReader = (*streamReader)(nil)

// NewReader creates a LineReader that reads r byte by byte and writes
// prompts to w. It is used when input isn't a terminal.
func NewReader(r io.Reader, w io.Writer) LineReader {
	return &streamReader{r: bufio.NewReader(r), w: w}
}

func (sr *streamReader) ReadLine(prompt string, in *Interaction) (string, error) {
	if _, err := io.WriteString(sr.w, prompt); err != nil {
		return "", err
	}

	var line strings.Builder
	for {
		c, err := sr.r.ReadByte()
		switch {
		case err == io.EOF:
			in.PressedReturn = false
			return line.String(), nil
		case err != nil:
			return "", err
		case c == '\n':
			in.PressedReturn = true
			return line.String(), nil
		}
		line.WriteByte(c)
	}
}

func (sr *streamReader) Close() error {
	return nil
}

type terminalReader struct {
	rl *readline.Instance
}

var _ LineReader = (*terminalReader)(nil)

// NewTerminalReader creates a LineReader for an interactive terminal.
// Ctrl+C is reported as an interrupt and Ctrl+D on an empty line as the end
// of the stream. History is disabled.
func NewTerminalReader(stdin io.Reader, stdout, stderr io.Writer) (LineReader, error) {
	cfg := &readline.Config{
		Stdin:                  readline.NewCancelableStdin(stdin),
		Stdout:                 stdout,
		Stderr:                 stderr,
		HistoryLimit:           -1,
		DisableAutoSaveHistory: true,
		InterruptPrompt:        "^C",
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	return &terminalReader{rl: rl}, nil
}

func (tr *terminalReader) ReadLine(prompt string, in *Interaction) (string, error) {
	tr.rl.SetPrompt(prompt)
	line, err := tr.rl.Readline()

	switch {
	case err == readline.ErrInterrupt:
		// Interrupt discards the partial line.
		in.Interrupted = true
		in.echoed = true
		return "", nil
	case err == io.EOF:
		in.PressedReturn = false
		return line, nil
	case err != nil:
		return "", err
	}

	in.PressedReturn = true
	return line, nil
}

func (tr *terminalReader) Close() error {
	return tr.rl.Close()
}
