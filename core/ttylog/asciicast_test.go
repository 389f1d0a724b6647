package ttylog

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeConversions(t *testing.T) {
	cases := map[string]struct {
		microseconds int64
		seconds      float64
	}{
		"precision": {
			microseconds: 1,
			seconds:      1e-6,
		},
		"negative": {
			microseconds: -631119539e6,
			seconds:      -631119539,
		},
		"positive": {
			microseconds: 631119539e6,
			seconds:      631119539,
		},
		"bigprecise": {
			microseconds: 123456789987654,
			seconds:      123456789.987654,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			s2m := secondsToMicroseconds(tc.seconds)
			m2s := microsecondsToSeconds(tc.microseconds)

			// Only allow delta to be to the NS
			assert.InDelta(t, m2s, tc.seconds, float64(time.Nanosecond)/float64(time.Second))
			assert.Equal(t, s2m, tc.microseconds)
		})
	}
}

func TestAsciicastRoundTrip(t *testing.T) {
	entries := []*Entry{
		{TimestampMicros: 1000000, FD: FDStdout, Data: []byte("(0) dmsh$ ")},
		{TimestampMicros: 1500000, FD: FDStdin, Data: []byte("ls\n")},
		{TimestampMicros: 2000000, FD: FDStderr, Data: []byte("dmsh: oops\n")},
	}

	buf := &bytes.Buffer{}
	sink := NewAsciicastLogSink(buf)
	for _, e := range entries {
		assert.Nil(t, sink(e))
	}

	var got []*Entry
	err := Replay(NewAsciicastLogSource(buf), func(e *Entry) error {
		got = append(got, e)
		return nil
	})
	assert.Nil(t, err)

	// Timestamps are relative to the first entry and stderr folds into
	// stdout.
	assert.Equal(t, []*Entry{
		{TimestampMicros: 0, FD: FDStdout, Data: []byte("(0) dmsh$ ")},
		{TimestampMicros: 500000, FD: FDStdin, Data: []byte("ls\n")},
		{TimestampMicros: 1000000, FD: FDStdout, Data: []byte("dmsh: oops\n")},
	}, got)
}

func TestAsciicastLogSourceMalformed(t *testing.T) {
	cases := map[string]string{
		"short":    "{}\n[1.0, \"o\"]\n",
		"bad-type": "{}\n[1.0, 2, \"x\"]\n",
		"not-json": "{}\nnope\n",
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			_, err := NewAsciicastLogSource(strings.NewReader(tc)).Next()
			assert.Error(t, err)
		})
	}
}
