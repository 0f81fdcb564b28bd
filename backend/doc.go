// Package backend is the logging backend behind the dispatch sink: named
// loggers with a level, appenders and an optional configuration file.
//
// A Logger starts from the environment. BIOS_LOG_LEVEL selects the level
// using syslog constants (LOG_TRACE ... LOG_OFF, anything else is trace),
// BIOS_LOG_PATTERN the conversion pattern and BIOS_LOG_FORMAT the layout
// (pattern, console, json or logfmt). BIOS_LOG_INIT_LEVEL, when present,
// applies only while the appenders are loaded and keeps that phase quiet.
//
// Without a readable configuration file a Logger writes to stderr. A
// YAML configuration file replaces the appenders and may set the level;
// it is polled for changes and reloaded in place:
//
//	level: LOG_INFO
//	appenders:
//	  - name: main
//	    type: file
//	    path: /var/log/agent.log
//	    threshold: LOG_WARNING
//	  - type: console
//	    target: stdout
//	    layout: json
//
// Appenders are zapcore cores. Writes go straight to the cores, so a
// fatal record is written like any other and never ends the process.
// File appenders hold an flock while writing so that several processes
// can share one log file.
//
// The mapped diagnostic context set with SetContext is process-wide and
// is attached to every write, as fields for the zap encoders and through
// %X in patterns.
package backend
