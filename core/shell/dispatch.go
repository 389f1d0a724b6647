package shell

import (
	"errors"
	"io/fs"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Dispatch runs a tokenized line and returns its status.
//
// A lone token naming a readable regular file or directory is opened with
// the configured viewer. Otherwise builtins are tried before external
// programs. Empty input runs nothing; its status is 0 if the user pressed
// return or interrupted, and 1 at the end of the stream.
//
// A non-nil error is always a *SpawnError.
func (s *Shell) Dispatch(args []string, in *Interaction) (Status, error) {
	if len(args) == 0 {
		if in.Interrupted || in.PressedReturn {
			return 0, nil
		}
		return 1, nil
	}

	if len(args) == 1 {
		if viewer, ok := s.viewerFor(args[0]); ok {
			return s.launch("viewer", []string{viewer, args[0]})
		}
	}

	if builtin, ok := AllBuiltins[args[0]]; ok {
		s.Logger.Debug("dispatch", zap.String("kind", "builtin"), zap.Strings("argv", args))
		return builtin.Main(s, args), nil
	}

	return s.launch("external", args)
}

func (s *Shell) launch(kind string, argv []string) (Status, error) {
	status, err := s.Launcher.Launch(argv)

	var spawnErr *SpawnError
	if errors.As(err, &spawnErr) {
		s.Logger.Warn("spawn failed", zap.String("kind", kind), zap.Strings("argv", argv), zap.Error(err))
		return spawnErr.Status(), err
	}

	s.Logger.Debug("dispatch", zap.String("kind", kind), zap.Strings("argv", argv), zap.Int("status", int(status)))
	return status, err
}

// viewerFor picks the viewer for path. Symlinks, special files and any
// path that can't be inspected or read fall through to normal dispatch.
func (s *Shell) viewerFor(path string) (string, bool) {
	info, err := lstat(s.Fs, path)
	if err != nil {
		return "", false
	}

	var viewer string
	switch {
	case info.Mode().IsRegular():
		viewer = s.Config.FileViewer
	case info.IsDir():
		viewer = s.Config.DirViewer
	default:
		return "", false
	}

	fd, err := s.Fs.Open(path)
	if err != nil {
		s.Logger.Debug("viewer skipped", zap.String("path", path), zap.Error(err))
		return "", false
	}
	fd.Close()

	return viewer, true
}

func lstat(fsys afero.Fs, path string) (fs.FileInfo, error) {
	if lstater, ok := fsys.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(path)
		return info, err
	}
	return fsys.Stat(path)
}
