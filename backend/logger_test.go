package backend

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/streamlog/core"
)

// syncBuffer is a bytes.Buffer safe for the watcher goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time                         { return c.t }
func (c fixedClock) NewTicker(d time.Duration) *time.Ticker { return time.NewTicker(d) }

var testTime = time.Date(2026, 3, 1, 10, 20, 30, 0, time.UTC)

// clearEnv unsets the logging variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvLevel, EnvInitLevel, EnvPattern, EnvFormat} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func newTestLogger(t *testing.T, configFile string, opts ...Option) (*Logger, *syncBuffer, *syncBuffer) {
	t.Helper()
	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	opts = append([]Option{WithStdout(stdout), WithStderr(stderr), WithClock(fixedClock{testTime})}, opts...)
	l := New("agent", configFile, opts...)
	t.Cleanup(func() { _ = l.Close() })
	return l, stdout, stderr
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "log.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func record(level core.Level, content string) core.Record {
	return core.Record{Level: level, File: "/src/app/main.go", Line: 12, Function: "main.run", Content: content}
}

func TestNew_NoConfigFile(t *testing.T) {
	clearEnv(t)
	l, _, stderr := newTestLogger(t, "")

	assert.Equal(t, "agent", l.Name())
	assert.Equal(t, core.TraceLevel, l.Level())
	assert.Equal(t, []string{"Consoleagent"}, l.Appenders())

	out := stderr.String()
	assert.Contains(t, out, "-WARN - ")
	assert.Contains(t, out, "No log configuration file defined")
	assert.Contains(t, out, "No log configuration file was loaded, will log to stderr by default")
	assert.Contains(t, out, "(logger.go:")
}

func TestNew_EnvLevel(t *testing.T) {
	tests := []struct {
		env  string
		want core.Level
	}{
		{"LOG_TRACE", core.TraceLevel},
		{"LOG_DEBUG", core.DebugLevel},
		{"LOG_INFO", core.InfoLevel},
		{"LOG_WARNING", core.WarnLevel},
		{"LOG_ERR", core.ErrorLevel},
		{"LOG_CRIT", core.FatalLevel},
		{"LOG_OFF", core.OffLevel},
		{"", core.TraceLevel},
		{"verbose", core.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvLevel, tt.env)

			l, _, _ := newTestLogger(t, "")
			assert.Equal(t, tt.want, l.Level())
		})
	}
}

func TestNew_InitLevelSilencesStartup(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLevel, "LOG_INFO")
	t.Setenv(EnvInitLevel, "LOG_OFF")

	l, _, stderr := newTestLogger(t, "")

	assert.Empty(t, stderr.String())
	assert.Equal(t, core.InfoLevel, l.Level(), "level must be restored after loading")
}

func TestNew_UnreadableConfigFile(t *testing.T) {
	clearEnv(t)
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	l, _, stderr := newTestLogger(t, missing)

	assert.Equal(t, []string{"Consoleagent"}, l.Appenders())
	assert.Contains(t, stderr.String(), "-ERROR- ")
	assert.Contains(t, stderr.String(), "File "+missing+" can't be accessed with read rights")
	assert.Error(t, l.SetConfigFile(missing))
}

func TestNew_EnvPattern(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvInitLevel, "LOG_OFF")
	t.Setenv(EnvPattern, "%p|%c|%m%n")

	l, _, stderr := newTestLogger(t, "")
	l.Write(record(core.InfoLevel, "hello"))

	assert.Equal(t, "INFO|agent|hello\n", stderr.String())
	assert.Equal(t, "%p|%c|%m%n", l.Pattern())
}

func TestNew_OptionsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvInitLevel, "LOG_OFF")
	t.Setenv(EnvPattern, "%p|%m%n")
	t.Setenv(EnvFormat, "console")

	l, _, stderr := newTestLogger(t, "", WithPattern("%c %m%n"), WithLayout("json"))
	assert.Equal(t, "%c %m%n", l.Pattern())

	l.Write(record(core.WarnLevel, "disk full"))

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(stderr.String()), &got))
	assert.Equal(t, "disk full", got["msg"])
	assert.Equal(t, "WARN", got["level"])
}

func TestWrite_DropsOffLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvInitLevel, "LOG_OFF")

	l, _, stderr := newTestLogger(t, "")
	l.Write(record(core.OffLevel, "never"))
	l.Write(record(core.Level(42), "never"))

	assert.Empty(t, stderr.String())
}

func TestWrite_FatalDoesNotExit(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvInitLevel, "LOG_OFF")

	l, _, stderr := newTestLogger(t, "")
	l.Write(record(core.FatalLevel, "still alive"))

	assert.Contains(t, stderr.String(), "-FATAL- main.run (main.go:12) still alive")
}

func TestWrite_Context(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvInitLevel, "LOG_OFF")
	t.Setenv(EnvPattern, "%X{user} %X %m%n")
	t.Cleanup(ClearContext)

	l, _, stderr := newTestLogger(t, "")

	SetContext(map[string]string{"user": "admin", "asset": "ups-1"})
	l.Write(record(core.InfoLevel, "with context"))
	ClearContext()
	l.Write(record(core.InfoLevel, "without"))

	assert.Equal(t, "admin {asset=ups-1, user=admin} with context\n {} without\n", stderr.String())
}

func TestInsertf(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvInitLevel, "LOG_OFF")
	t.Setenv(EnvPattern, "%p %F:%L %M %m")

	l, _, stderr := newTestLogger(t, "")
	l.Insertf(core.WarnLevel, "/x/y.go", 7, "pkg.fn", "%d parrots", 3)

	assert.Equal(t, "WARN /x/y.go:7 pkg.fn 3 parrots", stderr.String())
}

func TestLevelQueries(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvInitLevel, "LOG_OFF")

	l, _, _ := newTestLogger(t, "")
	l.SetLevel(core.WarnLevel)

	assert.True(t, l.IsLevelEnabled(core.FatalLevel))
	assert.True(t, l.IsLevelEnabled(core.WarnLevel))
	assert.False(t, l.IsLevelEnabled(core.InfoLevel))
	assert.False(t, l.IsLevelEnabled(core.OffLevel))
	assert.False(t, l.IsOff())

	l.SetLevel(core.OffLevel)
	assert.True(t, l.IsOff())
	assert.False(t, l.IsLevelEnabled(core.FatalLevel))
}

func TestConfigFile_Appenders(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "agent.log")
	cfg := writeConfig(t, dir, `
level: LOG_DEBUG
appenders:
  - name: main
    type: file
    path: `+logPath+`
    pattern: "%p %m%n"
    threshold: warn
  - name: out
    type: console
    target: stdout
    layout: json
`)

	l, stdout, stderr := newTestLogger(t, cfg)

	assert.Equal(t, core.DebugLevel, l.Level())
	assert.Equal(t, []string{"main", "out"}, l.Appenders())
	assert.Contains(t, stderr.String(), "Load Config file "+cfg)

	th, ok := l.AppenderThreshold("main")
	assert.True(t, ok)
	assert.Equal(t, core.WarnLevel, th)
	_, ok = l.AppenderThreshold("out")
	assert.False(t, ok)

	l.Write(record(core.InfoLevel, "info line"))
	l.Write(record(core.ErrorLevel, "error line"))
	require.NoError(t, l.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, "ERROR error line\n", string(data))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "error line", entry["msg"])
	assert.Equal(t, "agent", entry["logger"])
	assert.Equal(t, "main.run", entry["func"])
}

func TestConfigFile_Logfmt(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvInitLevel, "LOG_OFF")
	t.Cleanup(ClearContext)
	cfg := writeConfig(t, t.TempDir(), `
appenders:
  - type: console
    target: stdout
    layout: logfmt
`)

	l, stdout, _ := newTestLogger(t, cfg)
	assert.Equal(t, []string{"console-0"}, l.Appenders())

	SetContext(map[string]string{"user": "admin"})
	l.Write(record(core.TraceLevel, "deep detail"))

	out := stdout.String()
	assert.Contains(t, out, "level=TRACE")
	assert.Contains(t, out, `msg="deep detail"`)
	assert.Contains(t, out, "user=admin")
}

func TestConfigFile_Invalid(t *testing.T) {
	clearEnv(t)
	cfg := writeConfig(t, t.TempDir(), `
appenders:
  - type: socket
`)

	l, _, stderr := newTestLogger(t, cfg)

	assert.Equal(t, []string{"Consoleagent"}, l.Appenders())
	assert.Contains(t, stderr.String(), `unknown type "socket"`)
	assert.Error(t, l.SetConfigFile(cfg))
}

func TestConfigFile_Reload(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvInitLevel, "LOG_OFF")
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "level: LOG_INFO\nappenders:\n  - type: console\n    target: stdout\n")

	l, _, _ := newTestLogger(t, cfg, WithWatchInterval(10*time.Millisecond))
	require.Equal(t, core.InfoLevel, l.Level())

	// Different size guarantees a change even on coarse mtime filesystems.
	require.NoError(t, os.WriteFile(cfg, []byte("level: LOG_ERR\nappenders:\n  - name: reloaded\n    type: console\n"), 0644))

	require.Eventually(t, func() bool {
		return l.Level() == core.ErrorLevel
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"reloaded"}, l.Appenders())
}

func TestSetVerboseMode(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvInitLevel, "LOG_OFF")
	dir := t.TempDir()
	cfg := writeConfig(t, dir, `
level: LOG_WARNING
appenders:
  - name: file
    type: file
    path: `+filepath.Join(dir, "a.log")+`
  - name: strict
    type: file
    path: `+filepath.Join(dir, "b.log")+`
    threshold: LOG_ERR
  - name: console
    type: console
`)

	l, stdout, _ := newTestLogger(t, cfg)
	l.SetVerboseMode()

	assert.Equal(t, core.TraceLevel, l.Level())
	assert.Equal(t, []string{"file", "strict", "Verbose-agent"}, l.Appenders())

	th, ok := l.AppenderThreshold("file")
	assert.True(t, ok)
	assert.Equal(t, core.WarnLevel, th)

	th, ok = l.AppenderThreshold("strict")
	assert.True(t, ok)
	assert.Equal(t, core.ErrorLevel, th)

	_, ok = l.AppenderThreshold("Verbose-agent")
	assert.False(t, ok)

	l.Write(record(core.TraceLevel, "verbose trace"))
	assert.Contains(t, stdout.String(), "-TRACE- main.run (main.go:12) verbose trace")
}

func TestChange(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvInitLevel, "LOG_OFF")

	l, _, _ := newTestLogger(t, "")
	l.SetLevel(core.ErrorLevel)

	require.NoError(t, l.Change("other", ""))
	assert.Equal(t, "other", l.Name())
	assert.Equal(t, core.TraceLevel, l.Level())
	assert.Equal(t, []string{"Consoleother"}, l.Appenders())
}

func TestClose(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvInitLevel, "LOG_OFF")

	l, _, stderr := newTestLogger(t, "")
	require.NoError(t, l.Close())

	assert.Empty(t, l.Appenders())
	l.Write(record(core.ErrorLevel, "dropped"))
	assert.Empty(t, stderr.String())
	require.NoError(t, l.Close())
}

func TestWithCoarseClock(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvInitLevel, "LOG_OFF")
	t.Setenv(EnvPattern, "%d{2006}")

	l := New("agent", "", WithStderr(&syncBuffer{}), WithCoarseClock())
	defer l.Close()

	assert.IsType(t, core.CoarseClock{}, l.clock)
}

func TestDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvInitLevel, "LOG_OFF")

	replacement, _, _ := newTestLogger(t, "")
	prev := ReplaceDefault(replacement)
	t.Cleanup(func() { ReplaceDefault(prev) })

	assert.Same(t, replacement, Default())

	require.NoError(t, SetDefault("renamed", ""))
	assert.Equal(t, "renamed", Default().Name())
}

func TestDefault_ConcurrentFirstUse(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvInitLevel, "LOG_OFF")

	prev := ReplaceDefault(nil)
	t.Cleanup(func() {
		if l := ReplaceDefault(prev); l != nil {
			_ = l.Close()
		}
	})

	const n = 16
	got := make([]*Logger, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = Default()
		}(i)
	}
	wg.Wait()

	require.NotNil(t, got[0])
	for _, l := range got {
		assert.Same(t, got[0], l)
	}
	assert.Equal(t, DefaultName, got[0].Name())
}
