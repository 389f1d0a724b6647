// Package ttylog records and replays shell session transcripts.
package ttylog

import (
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
)

// FD identifies the stream an entry was captured from.
type FD int

const (
	FDStdin FD = iota
	FDStdout
	FDStderr
)

// Entry is a single chunk of captured I/O.
type Entry struct {
	TimestampMicros int64
	FD              FD
	Data            []byte
}

// LogSink receives log events.
type LogSink func(e *Entry) error

// LogSource adapts log readers.
type LogSource interface {
	// Next fetches the next available log entry. It returns io.EOF if the
	// source has no more log entries.
	Next() (*Entry, error)
}

// NewRealTimePlayback plays back the results in real-time.
// If maxSleep > 0, it's used as the maximum duration to pause.
func NewRealTimePlayback(maxSleep time.Duration, next LogSink) LogSink {
	var once sync.Once
	var prevTimeMicros int64

	return func(entry *Entry) error {
		once.Do(func() {
			prevTimeMicros = entry.TimestampMicros
		})

		delta := entry.TimestampMicros - prevTimeMicros
		prevTimeMicros = entry.TimestampMicros

		if maxSleep > 0 {
			sleepDuration := time.Duration(delta) * time.Microsecond
			if sleepDuration > maxSleep {
				sleepDuration = maxSleep
			}
			time.Sleep(sleepDuration)
		}

		return next(entry)
	}
}

// NewClientOutput writes stdout and stderr to the given writer
func NewClientOutput(w io.Writer) LogSink {
	return func(entry *Entry) error {
		if entry.FD == FDStdin {
			return nil
		}
		_, err := w.Write(entry.Data)
		return err
	}
}

// Replay reads a stream of events to a callback.
func Replay(recording LogSource, callback LogSink) error {
	for {
		entry, err := recording.Next()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		if err := callback(entry); err != nil {
			return err
		}
	}
}

// Recorder copies everything passing through the streams it wraps to a
// LogSink.
type Recorder struct {
	mutex  sync.Mutex
	output LogSink
	logger *zap.Logger
	now    func() time.Time
}

// NewRecorder creates a recorder that forwards all events to output.
// Failures to write the transcript are reported to logger and never reach
// the wrapped streams.
func NewRecorder(output LogSink, logger *zap.Logger) *Recorder {
	return &Recorder{output: output, logger: logger, now: time.Now}
}

func (r *Recorder) record(fd FD, data []byte) {
	if len(data) == 0 {
		return
	}

	entry := &Entry{
		TimestampMicros: r.now().UnixMicro(),
		FD:              fd,
		Data:            append([]byte(nil), data...),
	}

	r.mutex.Lock()
	err := r.output(entry)
	r.mutex.Unlock()
	if err != nil {
		r.logger.Warn("transcript write failed", zap.Int("fd", int(fd)), zap.Error(err))
	}
}

// Reader wraps an input stream.
func (r *Recorder) Reader(fd FD, wrapped io.Reader) io.Reader {
	return &recorderReader{r: r, fd: fd, wrapped: wrapped}
}

// Writer wraps an output stream.
func (r *Recorder) Writer(fd FD, wrapped io.Writer) io.Writer {
	return &recorderWriter{r: r, fd: fd, wrapped: wrapped}
}

type recorderReader struct {
	r       *Recorder
	fd      FD
	wrapped io.Reader
}

var _ io.Reader = (*recorderReader)(nil)

func (rr *recorderReader) Read(p []byte) (int, error) {
	n, err := rr.wrapped.Read(p)
	rr.r.record(rr.fd, p[:n])
	return n, err
}

type recorderWriter struct {
	r       *Recorder
	fd      FD
	wrapped io.Writer
}

var _ io.Writer = (*recorderWriter)(nil)

func (rw *recorderWriter) Write(p []byte) (int, error) {
	n, err := rw.wrapped.Write(p)
	rw.r.record(rw.fd, p[:n])
	return n, err
}
