// Package logging sets up hyprlayer's zerolog loggers.
//
// Every run writes human-readable lines to stderr and JSON lines to
// $XDG_STATE_HOME/hyprlayer/hyprlayer.log. The file also collects the
// output of syncs launched in the background by the post-commit hook, which
// have no terminal; each line carries the process id to tell runs apart.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const appName = "hyprlayer"

// EnvLogLevel overrides the -v count with a zerolog level name
// (trace, debug, info, warn, error). Hooks set it for background syncs.
const EnvLogLevel = "HYPRLAYER_LOG_LEVEL"

var (
	fileMu  sync.Mutex
	logFile *os.File
)

// SetupLogger configures the global logger for one hyprlayer run.
// Verbosity 0 logs warnings, 1 info, 2 debug with callers, 3+ trace.
// Calling it again replaces the previous setup and closes its log file.
func SetupLogger(verbosity int) {
	level := levelFor(verbosity)
	if override, ok := envLevel(); ok {
		level = override
	}
	zerolog.SetGlobalLevel(level)

	var writers []io.Writer
	writers = append(writers, zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})

	path := LogFilePath()
	file, err := openLogFile(path)
	if err == nil {
		writers = append(writers, file)
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Int("pid", os.Getpid())
	if level <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to open log file, logging to console only")
	}
	log.Debug().Int("verbosity", verbosity).Str("level", level.String()).Str("logFile", path).Msg("Logger initialized")
}

func levelFor(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// envLevel reads EnvLogLevel; unknown names are ignored
func envLevel() (zerolog.Level, bool) {
	value := strings.TrimSpace(os.Getenv(EnvLogLevel))
	if value == "" {
		return zerolog.NoLevel, false
	}
	level, err := zerolog.ParseLevel(strings.ToLower(value))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.NoLevel, false
	}
	return level, true
}

// GetLogger returns a logger tagged with a component name such as
// "config.store" or "gitrepo".
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// LogFilePath returns ~/.local/state/hyprlayer/hyprlayer.log or its
// XDG_STATE_HOME equivalent.
func LogFilePath() string {
	// xdg caches the environment at init; tests and wrappers change it later.
	xdg.Reload()
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

func openLogFile(path string) (*os.File, error) {
	fileMu.Lock()
	defer fileMu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	// O_APPEND keeps lines from a concurrent background sync whole
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logFile = file
	return file, nil
}

// LogCommand records the command line a run was started with
func LogCommand(cmd string, args []string) {
	log.Debug().
		Str("command", cmd).
		Strs("args", args).
		Msg("Executing command")
}

// LogOperationStart logs the start of an operation and returns a function
// that logs its completion with the elapsed time.
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
