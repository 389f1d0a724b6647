package logger

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}

// New creates a JSON lines logger appending to path at the given level. If
// path is empty, logging is disabled.
func New(fs afero.Fs, path, level string) (*zap.Logger, io.Closer, error) {
	if path == "" {
		return zap.NewNop(), nopCloser{}, nil
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	fd, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, err
	}

	return NewWriterLogger(fd, lvl), fd, nil
}

// NewWriterLogger creates a JSON lines logger writing to w.
func NewWriterLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core)
}

// NewSession attaches a fresh session ID to every entry of the logger.
func NewSession(l *zap.Logger) *zap.Logger {
	return l.With(zap.String("session", uuid.NewString()))
}
