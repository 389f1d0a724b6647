package shell

import (
	"bytes"
	"strings"

	"github.com/josephlewis42/dmsh/core/config"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// exitCode is the panic value of the test exit hook.
type exitCode int

// fakeLauncher records launched commands and answers with canned results.
type fakeLauncher struct {
	launched [][]string
	results  map[string]Status
	errs     map[string]error
}

func (f *fakeLauncher) Launch(argv []string) (Status, error) {
	f.launched = append(f.launched, argv)
	if err, ok := f.errs[argv[0]]; ok {
		return NoStatus, &SpawnError{Argv: argv, Err: err}
	}
	return f.results[argv[0]], nil
}

// countedInterrupts reports an interrupt for the first n checks.
type countedInterrupts struct {
	n int
}

func (c *countedInterrupts) Pending() bool {
	if c.n > 0 {
		c.n--
		return true
	}
	return false
}

type testShell struct {
	*Shell
	launcher *fakeLauncher
	out      *bytes.Buffer
}

func newTestShell(input string) *testShell {
	cfg := config.Default()
	cfg.Banner = nil

	out := &bytes.Buffer{}
	launcher := &fakeLauncher{
		results: make(map[string]Status),
		errs:    make(map[string]error),
	}

	return &testShell{
		Shell: &Shell{
			Config:   cfg,
			Reader:   NewReader(strings.NewReader(input), out),
			Launcher: launcher,
			Signals:  &countedInterrupts{},
			Fs:       afero.NewMemMapFs(),
			Stdout:   out,
			Stderr:   out,
			Logger:   zap.NewNop(),
			Exit: func(code int) {
				panic(exitCode(code))
			},
		},
		launcher: launcher,
		out:      out,
	}
}
