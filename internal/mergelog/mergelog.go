// Package mergelog is the process-wide logger. Logging is off unless BLOCKMERGE_LOG_FILE names a file; the merge core never logs, only the
// driver and CLI do.
package mergelog

import (
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// EnvFile names the log file. Unset or empty disables logging.
	EnvFile = "BLOCKMERGE_LOG_FILE"

	// EnvLevel selects the zerolog level (debug, info, warn, ...). Defaults to info.
	EnvLevel = "BLOCKMERGE_LOG_LEVEL"
)

const (
	maxSizeMB  = 10
	maxBackups = 3
)

var (
	mu      sync.Mutex
	path    string
	level   string
	rotator *lumberjack.Logger
)

var cached = zerolog.Nop()

// Logger returns a JSON-lines logger writing to the file named by BLOCKMERGE_LOG_FILE, rotated by size. It returns zerolog.Nop() when the
// variable is unset. The environment is consulted on every call, so tests may change it with t.Setenv.
func Logger() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	p := os.Getenv(EnvFile)
	lv := os.Getenv(EnvLevel)
	if p == path && lv == level && (p == "" || rotator != nil) {
		return cached
	}

	if rotator != nil {
		_ = rotator.Close()
		rotator = nil
	}
	path, level = p, lv

	if p == "" || isDir(p) {
		cached = zerolog.Nop()
		return cached
	}

	rotator = &lumberjack.Logger{
		Filename:   p,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		LocalTime:  true,
	}
	cached = zerolog.New(rotator).Level(parseLevel(lv)).With().Timestamp().Logger()
	return cached
}

// Close releases the current log file, if any. Later calls to Logger reopen it.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	path, level = "", ""
	cached = zerolog.Nop()
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}

func parseLevel(s string) zerolog.Level {
	if s == "" {
		return zerolog.InfoLevel
	}
	lv, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lv == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lv
}

func isDir(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.IsDir()
}
