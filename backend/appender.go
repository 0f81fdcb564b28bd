package backend

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/philipp01105/streamlog/core"
)

// appender is one destination of a Logger: a zap core writing through an
// encoder, plus an optional threshold of its own.
type appender struct {
	name      string
	kind      string
	core      zapcore.Core
	threshold atomic.Int32
	closer    io.Closer
}

func newAppender(name, kind string, enc zapcore.Encoder, ws zapcore.WriteSyncer, closer io.Closer) *appender {
	a := &appender{
		name:   name,
		kind:   kind,
		core:   zapcore.NewCore(enc, ws, zap.LevelEnablerFunc(func(zapcore.Level) bool { return true })),
		closer: closer,
	}
	a.threshold.Store(int32(notSet))
	return a
}

func (a *appender) admits(l core.Level) bool {
	return threshold(a.threshold.Load()).admits(l)
}

func (a *appender) setThreshold(l core.Level) {
	a.threshold.Store(int32(l))
}

// getThreshold returns the appender threshold, ok=false when none is set.
func (a *appender) getThreshold() (core.Level, bool) {
	t := threshold(a.threshold.Load())
	if t == notSet {
		return 0, false
	}
	return core.Level(t), true
}

func (a *appender) write(ent zapcore.Entry, fields []zapcore.Field) error {
	return a.core.Write(ent, fields)
}

// close releases the appender. Console appenders leave their writer open.
func (a *appender) close() error {
	if a.closer == nil {
		return nil
	}
	err := multierr.Append(a.core.Sync(), a.closer.Close())
	return errors.Wrapf(err, "close appender %s", a.name)
}

type fdWriter interface {
	Fd() uintptr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// newConsoleAppender writes to w. The console layout colours level names
// when w is a terminal. Sync is a no-op: fsync fails on terminals.
func newConsoleAppender(name string, w io.Writer, layout, pattern string) *appender {
	enc := newEncoder(layout, pattern, layout == LayoutConsole && isTerminal(w))
	ws := zapcore.Lock(zapcore.AddSync(struct{ io.Writer }{w}))
	return newAppender(name, AppenderConsole, enc, ws, nil)
}

// fileSink appends to a log file. Writes hold an flock on the file so
// that several processes can share it.
type fileSink struct {
	mu   sync.Mutex
	file *os.File
	lock *flock.Flock
}

func openFileSink(path string) (*fileSink, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, "create log directory for %s", path)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "open log file %s", path)
	}

	return &fileSink{file: file, lock: flock.New(path)}, nil
}

func (s *fileSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.Lock(); err != nil {
		return 0, errors.Wrap(err, "acquire file lock")
	}
	n, err := s.file.Write(p)
	if uerr := s.lock.Unlock(); uerr != nil && err == nil {
		err = errors.Wrap(uerr, "release file lock")
	}
	return n, err
}

func (s *fileSink) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Sync()
}

func (s *fileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return multierr.Combine(s.lock.Close(), s.file.Close())
}

func newFileAppender(name, path, layout, pattern string) (*appender, error) {
	sink, err := openFileSink(path)
	if err != nil {
		return nil, err
	}
	return newAppender(name, AppenderFile, newEncoder(layout, pattern, false), sink, sink), nil
}

// buildAppenders creates the appenders described by cfg. On error the
// appenders already opened are closed again.
func buildAppenders(cfg *FileConfig, defaultPattern string, stdout, stderr io.Writer) ([]*appender, error) {
	pattern := defaultPattern
	if cfg.Pattern != "" {
		pattern = cfg.Pattern
	}

	built := make([]*appender, 0, len(cfg.Appenders))
	for i, ac := range cfg.Appenders {
		name := ac.Name
		if name == "" {
			name = ac.Type + "-" + strconv.Itoa(i)
		}
		layout := ac.Layout
		if layout == "" {
			layout = LayoutPattern
		}
		p := pattern
		if ac.Pattern != "" {
			p = ac.Pattern
		}

		var a *appender
		switch ac.Type {
		case AppenderFile:
			var err error
			if a, err = newFileAppender(name, ac.Path, layout, p); err != nil {
				closeAppenders(built)
				return nil, err
			}
		default:
			w := stderr
			if ac.Target == "stdout" {
				w = stdout
			}
			a = newConsoleAppender(name, w, layout, p)
		}

		if ac.Threshold != "" {
			l, _ := parseConfigLevel(ac.Threshold)
			a.setThreshold(l)
		}
		built = append(built, a)
	}
	return built, nil
}

func closeAppenders(as []*appender) error {
	var err error
	for _, a := range as {
		err = multierr.Append(err, a.close())
	}
	return err
}
