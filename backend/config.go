package backend

import (
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/philipp01105/streamlog/core"
)

// Environment variables read when a Logger is initialized.
const (
	EnvLevel     = "BIOS_LOG_LEVEL"
	EnvInitLevel = "BIOS_LOG_INIT_LEVEL"
	EnvPattern   = "BIOS_LOG_PATTERN"
	EnvFormat    = "BIOS_LOG_FORMAT"
)

// EnvConfig holds the logging settings taken from the environment.
//
// Level uses the syslog constants (LOG_TRACE, LOG_DEBUG, LOG_INFO,
// LOG_WARNING, LOG_ERR, LOG_CRIT, LOG_OFF); anything else means trace.
type EnvConfig struct {
	Level   string `env:"BIOS_LOG_LEVEL"`
	Pattern string `env:"BIOS_LOG_PATTERN"`
	Format  string `env:"BIOS_LOG_FORMAT" env-default:"pattern"`
}

// ReadEnv reads EnvConfig from the process environment.
func ReadEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return EnvConfig{}, errors.Wrap(err, "read logging environment")
	}
	return cfg, nil
}

// LevelOrTrace returns the configured level, or trace when it is empty
// or not a syslog constant.
func (c EnvConfig) LevelOrTrace() core.Level {
	if l, ok := core.ParseSyslogLevel(c.Level); ok {
		return l
	}
	return core.TraceLevel
}

// Layout returns the configured layout, or the pattern layout when the
// value is unknown.
func (c EnvConfig) Layout() string {
	if validLayout(c.Format) {
		return c.Format
	}
	return LayoutPattern
}

// initLevel reports the level requested for initialization messages.
// An unknown value silences them.
func initLevel() (core.Level, bool) {
	v, ok := os.LookupEnv(EnvInitLevel)
	if !ok {
		return 0, false
	}
	if l, ok := core.ParseSyslogLevel(v); ok {
		return l, true
	}
	return core.OffLevel, true
}

// LoadEnvFile loads KEY=VALUE pairs from .env files into the environment
// without overriding variables that are already set. With no arguments it
// reads ./.env.
func LoadEnvFile(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return errors.Wrap(err, "load env file")
	}
	return nil
}

// FileConfig is the content of a logging configuration file.
//
//	level: LOG_INFO
//	pattern: "%d %-5p %c %m%n"
//	appenders:
//	  - name: main
//	    type: file
//	    path: /var/log/agent.log
//	    threshold: warn
//	  - name: console
//	    type: console
//	    target: stdout
//	    layout: json
type FileConfig struct {
	Level     string           `yaml:"level"`
	Pattern   string           `yaml:"pattern"`
	Appenders []AppenderConfig `yaml:"appenders"`
}

// AppenderConfig describes one appender of a FileConfig.
type AppenderConfig struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Target    string `yaml:"target"`
	Path      string `yaml:"path"`
	Layout    string `yaml:"layout"`
	Pattern   string `yaml:"pattern"`
	Threshold string `yaml:"threshold"`
}

// Appender types.
const (
	AppenderConsole = "console"
	AppenderFile    = "file"
)

// LoadConfigFile reads and validates the configuration file at path.
func LoadConfigFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config file %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config file %s", path)
	}
	return &cfg, nil
}

func (c *FileConfig) validate() error {
	if c.Level != "" {
		if _, err := parseConfigLevel(c.Level); err != nil {
			return err
		}
	}
	for i, a := range c.Appenders {
		switch a.Type {
		case AppenderConsole:
			if a.Target != "" && a.Target != "stdout" && a.Target != "stderr" {
				return errors.Errorf("appender %d: unknown target %q", i, a.Target)
			}
		case AppenderFile:
			if a.Path == "" {
				return errors.Errorf("appender %d: file appender needs a path", i)
			}
		default:
			return errors.Errorf("appender %d: unknown type %q", i, a.Type)
		}
		if a.Layout != "" && !validLayout(a.Layout) {
			return errors.Errorf("appender %d: unknown layout %q", i, a.Layout)
		}
		if a.Threshold != "" {
			if _, err := parseConfigLevel(a.Threshold); err != nil {
				return errors.Wrapf(err, "appender %d", i)
			}
		}
	}
	return nil
}

// parseConfigLevel accepts syslog constants as well as level names.
func parseConfigLevel(s string) (core.Level, error) {
	var l core.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, err
	}
	return l, nil
}
