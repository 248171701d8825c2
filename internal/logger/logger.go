// Package logger holds the shared charmbracelet logger of cmdwire and the
// per component loggers derived from it.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// LevelEnv names the level used when Configure is given none.
const LevelEnv = "CMDWIRE_LOG_LEVEL"

var (
	mu     sync.RWMutex
	shared = newLogger(os.Stderr, log.InfoLevel)
	dest   io.Writer = os.Stderr
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.New(w)
	l.SetTimeFormat("")
	l.SetLevel(level)
	return l
}

// Configure sends every logger created afterwards to file, or to stderr when
// file is empty, at the named level. The returned closer releases the file.
func Configure(level, file string) (io.Closer, error) {
	if level == "" {
		level = os.Getenv(LevelEnv)
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, err
		}
		w, closer = f, f
	}

	mu.Lock()
	defer mu.Unlock()
	dest = w
	shared = newLogger(w, ParseLevel(level))
	return closer, nil
}

// Redirect keeps the current level and writes to w from now on. Tests use
// it to capture logs.
func Redirect(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	dest = w
	shared = newLogger(w, shared.GetLevel())
}

// Shared returns the logger behind the package-level functions.
func Shared() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return shared
}

// ParseLevel maps a level name to a log level. Unknown names are info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	}
	return log.InfoLevel
}

func Debug(msg any, keyvals ...any) { Shared().Debug(msg, keyvals...) }
func Info(msg any, keyvals ...any)  { Shared().Info(msg, keyvals...) }
func Warn(msg any, keyvals ...any)  { Shared().Warn(msg, keyvals...) }

// NewStyledLogger returns the logger of one component, such as "Invoker".
// It shares the destination and level of the shared logger, prints its
// component as a prefix and colors the keys dispatch traces use.
func NewStyledLogger(component string) *log.Logger {
	mu.RLock()
	w, level := dest, shared.GetLevel()
	mu.RUnlock()

	styles := log.DefaultStyles()
	for lvl, background := range map[log.Level]string{
		log.DebugLevel: "240",
		log.InfoLevel:  "33",
		log.WarnLevel:  "214",
		log.ErrorLevel: "196",
		log.FatalLevel: "88",
	} {
		styles.Levels[lvl] = lipgloss.NewStyle().
			SetString(strings.ToUpper(lvl.String())).
			Padding(0, 1).
			Background(lipgloss.Color(background)).
			Foreground(lipgloss.Color("15"))
	}
	for key, color := range map[string]string{
		"command":   "46",
		"parameter": "39",
		"resolver":  "39",
		"depth":     "214",
		"error":     "196",
	} {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	styles.Values["error"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	l := log.NewWithOptions(w, log.Options{Prefix: component + " ", Level: level})
	l.SetStyles(styles)
	return l
}
