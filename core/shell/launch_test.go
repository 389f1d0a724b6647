//go:build unix

package shell

import (
	"bytes"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecLauncher(t *testing.T) {
	cases := map[string]struct {
		argv []string
		want Status
	}{
		"success":     {[]string{"sh", "-c", "exit 0"}, 0},
		"exit-7":      {[]string{"sh", "-c", "exit 7"}, 7},
		"exit-255":    {[]string{"sh", "-c", "exit 255"}, 255},
		"killed":      {[]string{"sh", "-c", "kill -KILL $$"}, NoStatus},
		"interrupted": {[]string{"sh", "-c", "kill -TERM $$"}, NoStatus},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			l := &ExecLauncher{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

			status, err := l.Launch(tc.argv)

			assert.Nil(t, err)
			assert.Equal(t, tc.want, status)
		})
	}
}

func TestExecLauncherStreams(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	l := &ExecLauncher{Stdout: stdout, Stderr: stderr}

	status, err := l.Launch([]string{"sh", "-c", "echo out; echo err 1>&2"})

	assert.Nil(t, err)
	assert.Equal(t, Status(0), status)
	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
}

func TestExecLauncherSpawnErrors(t *testing.T) {
	cases := map[string]struct {
		argv       []string
		wantStatus Status
	}{
		"not-in-path":  {[]string{"dmsh-does-not-exist"}, StatusNotFound},
		"missing-path": {[]string{"./dmsh-does-not-exist"}, StatusNotFound},
		"directory":    {[]string{"/"}, StatusNotExecutable},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			l := &ExecLauncher{}

			status, err := l.Launch(tc.argv)

			var spawnErr *SpawnError
			if assert.True(t, errors.As(err, &spawnErr)) {
				assert.Equal(t, tc.argv, spawnErr.Argv)
				assert.Equal(t, tc.wantStatus, spawnErr.Status())
			}
			assert.Equal(t, NoStatus, status)
		})
	}

	t.Run("unwraps", func(t *testing.T) {
		_, err := (&ExecLauncher{}).Launch([]string{"dmsh-does-not-exist"})
		assert.True(t, errors.Is(err, exec.ErrNotFound))
	})
}
