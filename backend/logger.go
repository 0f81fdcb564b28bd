package backend

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/streamlog/core"
	"github.com/philipp01105/streamlog/formatter"
)

// Logger is a named logging backend: a level, a list of appenders, and
// optionally a configuration file that is watched for changes.
//
// Write is a forced write: the logger level is not consulted, only the
// thresholds of the individual appenders. Callers check IsLevelEnabled
// first. All methods are safe for concurrent use.
type Logger struct {
	mu         sync.RWMutex
	name       string
	configFile string
	pattern    string
	layout     string
	appenders  []*appender
	watcher    *watcher

	level atomic.Int32

	stdout        io.Writer
	stderr        io.Writer
	errOut        zapcore.WriteSyncer
	watchInterval time.Duration
	clock         zapcore.Clock

	// set by options, take precedence over the environment
	forcedPattern string
	forcedLayout  string
}

// Option configures a Logger.
type Option func(*Logger)

// WithStdout sets the writer used by stdout console appenders.
func WithStdout(w io.Writer) Option {
	return func(l *Logger) { l.stdout = w }
}

// WithStderr sets the writer used by stderr console appenders and for
// reporting write errors.
func WithStderr(w io.Writer) Option {
	return func(l *Logger) { l.stderr = w }
}

// WithWatchInterval sets how often the config file is polled.
func WithWatchInterval(d time.Duration) Option {
	return func(l *Logger) {
		if d > 0 {
			l.watchInterval = d
		}
	}
}

// WithPattern sets the default conversion pattern, overriding
// BIOS_LOG_PATTERN.
func WithPattern(pattern string) Option {
	return func(l *Logger) { l.forcedPattern = pattern }
}

// WithLayout sets the layout of console appenders, overriding
// BIOS_LOG_FORMAT. Unknown layouts are ignored.
func WithLayout(layout string) Option {
	return func(l *Logger) {
		if validLayout(layout) {
			l.forcedLayout = layout
		}
	}
}

// WithClock sets the clock that stamps entries.
func WithClock(c zapcore.Clock) Option {
	return func(l *Logger) { l.clock = c }
}

// WithCoarseClock stamps entries from the cached coarse clock.
func WithCoarseClock() Option {
	return WithClock(core.NewCoarseClock())
}

// New creates a logger named name and loads configFile, if any.
//
// The level comes from BIOS_LOG_LEVEL, the default pattern from
// BIOS_LOG_PATTERN and the layout of console appenders from
// BIOS_LOG_FORMAT. Problems with the config file are logged through the
// logger itself; the logger then writes to stderr.
func New(name, configFile string, opts ...Option) *Logger {
	l := &Logger{
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		watchInterval: DefaultWatchInterval,
		clock:         zapcore.DefaultClock,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.errOut = zapcore.Lock(zapcore.AddSync(struct{ io.Writer }{l.stderr}))

	_ = l.init(name, configFile)
	return l
}

func (l *Logger) init(name, configFile string) error {
	l.stopWatcher()

	env, envErr := ReadEnv()

	l.mu.Lock()
	old := l.appenders
	l.appenders = nil
	l.name = name
	l.configFile = configFile
	l.pattern = formatter.DefaultPattern
	if env.Pattern != "" {
		l.pattern = env.Pattern
	}
	if l.forcedPattern != "" {
		l.pattern = l.forcedPattern
	}
	l.layout = env.Layout()
	if l.forcedLayout != "" {
		l.layout = l.forcedLayout
	}
	l.mu.Unlock()

	l.SetLevel(env.LevelOrTrace())

	err := multierr.Combine(envErr, closeAppenders(old))
	return multierr.Append(err, l.loadAppenders())
}

// loadAppenders installs the stderr console appender, then replaces it
// with the appenders of the config file when one is readable.
//
// When BIOS_LOG_INIT_LEVEL is set, its level applies while loading and
// the informational messages about the outcome are not written.
func (l *Logger) loadAppenders() error {
	l.stopWatcher()

	initLvl, quiet := initLevel()
	var oldLevel core.Level
	if quiet {
		oldLevel = l.Level()
		l.SetLevel(initLvl)
	}

	l.mu.Lock()
	old := l.appenders
	l.appenders = []*appender{newConsoleAppender("Console"+l.name, l.stderr, l.layout, l.pattern)}
	path := l.configFile
	l.mu.Unlock()
	err := closeAppenders(old)

	loadFile := false
	if path != "" {
		if f, oerr := os.Open(path); oerr == nil {
			_ = f.Close()
			loadFile = true
		} else {
			l.insertf(core.ErrorLevel, "File %s can't be accessed with read rights; this process will not monitor whether it becomes available later", path)
			err = multierr.Append(err, errors.Wrapf(oerr, "open config file %s", path))
		}
	} else if !quiet {
		l.insertf(core.WarnLevel, "No log configuration file defined")
	}

	if !loadFile {
		if !quiet {
			l.insertf(core.InfoLevel, "No log configuration file was loaded, will log to stderr by default")
		}
		if quiet {
			l.SetLevel(oldLevel)
		}
		return err
	}

	if !quiet {
		l.insertf(core.InfoLevel, "Load Config file %s", path)
	}
	if quiet {
		l.SetLevel(oldLevel)
	}
	if aerr := l.applyConfigFile(path); aerr != nil {
		l.insertf(core.ErrorLevel, "%v", aerr)
		err = multierr.Append(err, aerr)
	}

	l.mu.Lock()
	prev := l.watcher
	l.watcher = startWatcher(path, l.watchInterval, l.reload)
	l.mu.Unlock()
	if prev != nil {
		prev.Stop()
	}
	return err
}

// applyConfigFile replaces the appenders with those of the file at path
// and applies its level. On error the current appenders stay.
func (l *Logger) applyConfigFile(path string) error {
	cfg, err := LoadConfigFile(path)
	if err != nil {
		return err
	}

	l.mu.RLock()
	pattern := l.pattern
	l.mu.RUnlock()

	built, err := buildAppenders(cfg, pattern, l.stdout, l.stderr)
	if err != nil {
		return err
	}

	l.mu.Lock()
	old := l.appenders
	l.appenders = built
	l.mu.Unlock()

	if cfg.Level != "" {
		lvl, _ := parseConfigLevel(cfg.Level)
		l.SetLevel(lvl)
	}
	return closeAppenders(old)
}

func (l *Logger) reload() {
	l.mu.RLock()
	path := l.configFile
	l.mu.RUnlock()

	if err := l.applyConfigFile(path); err != nil {
		l.insertf(core.ErrorLevel, "Reload config file %s failed: %v", path, err)
	}
}

func (l *Logger) stopWatcher() {
	l.mu.Lock()
	w := l.watcher
	l.watcher = nil
	l.mu.Unlock()

	if w != nil {
		w.Stop()
	}
}

// Write sends rec to every appender whose threshold admits its level.
// The entry carries the current time, the logger name and the mapped
// diagnostic context. Records at OffLevel are dropped.
func (l *Logger) Write(rec core.Record) {
	if rec.Level == core.OffLevel || !rec.Level.Valid() {
		return
	}

	ent := zapcore.Entry{
		Level:   toZapLevel(rec.Level),
		Time:    l.clock.Now(),
		Message: rec.Content,
		Caller: zapcore.EntryCaller{
			Defined:  rec.File != "",
			File:     rec.File,
			Line:     rec.Line,
			Function: rec.Function,
		},
	}
	fields := contextFields()

	l.mu.RLock()
	defer l.mu.RUnlock()

	ent.LoggerName = l.name
	for _, a := range l.appenders {
		if !a.admits(rec.Level) {
			continue
		}
		if err := a.write(ent, fields); err != nil {
			fmt.Fprintf(l.errOut, "%v write error: %v\n", ent.Time, err)
			_ = l.errOut.Sync()
		}
	}
}

// Insertf writes a formatted message as if logged at file:line in
// function fn.
func (l *Logger) Insertf(level core.Level, file string, line int, fn, format string, args ...any) {
	l.Write(core.Record{
		Level:    level,
		File:     file,
		Line:     line,
		Function: fn,
		Content:  fmt.Sprintf(format, args...),
	})
}

// insertf reports events of the logger itself, subject to its level.
func (l *Logger) insertf(level core.Level, format string, args ...any) {
	if !l.IsLevelEnabled(level) {
		return
	}
	caller := core.GetCaller(2)
	l.Insertf(level, caller.File, caller.Line, caller.Function, format, args...)
}

// SetLevel sets the logger level.
func (l *Logger) SetLevel(level core.Level) {
	l.level.Store(int32(level))
}

// Level returns the logger level.
func (l *Logger) Level() core.Level {
	return core.Level(l.level.Load())
}

// IsLevelEnabled reports whether records at level pass the logger level.
func (l *Logger) IsLevelEnabled(level core.Level) bool {
	return level != core.OffLevel && l.Level().Enables(level)
}

// IsOff reports whether the logger level is OffLevel.
func (l *Logger) IsOff() bool {
	return l.Level() == core.OffLevel
}

// Name returns the agent name.
func (l *Logger) Name() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.name
}

// ConfigFile returns the path of the config file, if any.
func (l *Logger) ConfigFile() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.configFile
}

// Pattern returns the default conversion pattern of the logger.
func (l *Logger) Pattern() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pattern
}

// SetConfigFile switches to the config file at path and reloads the
// appenders. An empty path goes back to the stderr console appender.
func (l *Logger) SetConfigFile(path string) error {
	l.mu.Lock()
	l.configFile = path
	l.mu.Unlock()
	return l.loadAppenders()
}

// Change reinitializes the logger under a new name and config file, as
// New does.
func (l *Logger) Change(name, configFile string) error {
	return l.init(name, configFile)
}

// SetVerboseMode sets the level to trace while keeping the output of the
// configured appenders unchanged. Console appenders are removed, every
// remaining appender without a threshold gets the previous level as its
// threshold, and a console appender named Verbose-<name> is added that
// writes everything to stdout.
func (l *Logger) SetVerboseMode() {
	prev := l.Level()
	l.SetLevel(core.TraceLevel)

	l.mu.Lock()
	kept := make([]*appender, 0, len(l.appenders)+1)
	var dropped []*appender
	for _, a := range l.appenders {
		if a.kind == AppenderConsole {
			dropped = append(dropped, a)
			continue
		}
		if _, ok := a.getThreshold(); !ok {
			a.setThreshold(prev)
		}
		kept = append(kept, a)
	}
	kept = append(kept, newConsoleAppender("Verbose-"+l.name, l.stdout, l.layout, l.pattern))
	l.appenders = kept
	l.mu.Unlock()

	_ = closeAppenders(dropped)
}

// Appenders returns the names of the current appenders in order.
func (l *Logger) Appenders() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, len(l.appenders))
	for i, a := range l.appenders {
		names[i] = a.name
	}
	return names
}

// AppenderThreshold returns the threshold of the named appender. ok is
// false when the appender does not exist or has no threshold.
func (l *Logger) AppenderThreshold(name string) (level core.Level, ok bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, a := range l.appenders {
		if a.name == name {
			return a.getThreshold()
		}
	}
	return 0, false
}

// Close stops watching the config file and closes all appenders. The
// logger stays usable but writes nothing until reconfigured.
func (l *Logger) Close() error {
	l.stopWatcher()

	l.mu.Lock()
	old := l.appenders
	l.appenders = nil
	l.mu.Unlock()

	return closeAppenders(old)
}
