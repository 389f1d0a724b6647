package ttylog

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecorder(t *testing.T) {
	var got []*Entry
	recorder := NewRecorder(func(e *Entry) error {
		got = append(got, e)
		return nil
	}, zap.NewNop())
	recorder.now = func() time.Time {
		return time.UnixMicro(42)
	}

	out := &bytes.Buffer{}
	w := recorder.Writer(FDStdout, out)
	r := recorder.Reader(FDStdin, strings.NewReader("cd /tmp\n"))

	_, err := io.WriteString(w, "(0) dmsh$ ")
	assert.Nil(t, err)
	in, err := io.ReadAll(r)
	assert.Nil(t, err)

	assert.Equal(t, "(0) dmsh$ ", out.String())
	assert.Equal(t, "cd /tmp\n", string(in))
	assert.Equal(t, []*Entry{
		{TimestampMicros: 42, FD: FDStdout, Data: []byte("(0) dmsh$ ")},
		{TimestampMicros: 42, FD: FDStdin, Data: []byte("cd /tmp\n")},
	}, got)
}

func TestRecorderSinkFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	full := errors.New("disk full")
	recorder := NewRecorder(func(*Entry) error {
		return full
	}, zap.New(core))

	out := &bytes.Buffer{}
	w := recorder.Writer(FDStderr, out)

	n, err := io.WriteString(w, "dmsh: oops\n")
	assert.Nil(t, err)
	assert.Equal(t, 11, n)
	assert.Equal(t, "dmsh: oops\n", out.String())

	entries := logs.FilterMessage("transcript write failed").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, int64(FDStderr), entries[0].ContextMap()["fd"])
		assert.Equal(t, "disk full", entries[0].ContextMap()["error"])
	}
}

type sliceSource []*Entry

func (s *sliceSource) Next() (*Entry, error) {
	if len(*s) == 0 {
		return nil, io.EOF
	}
	next := (*s)[0]
	*s = (*s)[1:]
	return next, nil
}

func TestReplayClientOutput(t *testing.T) {
	source := &sliceSource{
		{TimestampMicros: 0, FD: FDStdout, Data: []byte("(0) dmsh$ ")},
		{TimestampMicros: 10, FD: FDStdin, Data: []byte("exit\n")},
		{TimestampMicros: 20, FD: FDStderr, Data: []byte("bye\n")},
	}

	out := &bytes.Buffer{}
	err := Replay(source, NewRealTimePlayback(time.Millisecond, NewClientOutput(out)))

	assert.Nil(t, err)
	assert.Equal(t, "(0) dmsh$ bye\n", out.String())
}

func TestReplayStopsOnError(t *testing.T) {
	source := &sliceSource{
		{FD: FDStdout, Data: []byte("a")},
		{FD: FDStdout, Data: []byte("b")},
	}
	stop := errors.New("stop")

	calls := 0
	err := Replay(source, func(*Entry) error {
		calls++
		return stop
	})

	assert.Equal(t, stop, err)
	assert.Equal(t, 1, calls)
}
