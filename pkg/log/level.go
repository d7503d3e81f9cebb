package log

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Level is a record severity. Levels are totally ordered.
type Level int

const (
	LevelDebug    Level = 10
	LevelInfo     Level = 20
	LevelWarning  Level = 30
	LevelError    Level = 40
	LevelCritical Level = 50
)

// slogLevelCritical sits one slog step above slog.LevelError.
const slogLevelCritical = slog.LevelError + 4

var levelNames = map[Level]string{
	LevelDebug:    "DEBUG",
	LevelInfo:     "INFO",
	LevelWarning:  "WARNING",
	LevelError:    "ERROR",
	LevelCritical: "CRITICAL",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "Level " + strconv.Itoa(int(l))
}

// Slog maps l onto the slog level scale.
func (l Level) Slog() slog.Level {
	switch {
	case l >= LevelCritical:
		return slogLevelCritical
	case l >= LevelError:
		return slog.LevelError
	case l >= LevelWarning:
		return slog.LevelWarn
	case l >= LevelInfo:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// LevelOf is the inverse of Level.Slog for the five named levels.
func LevelOf(l slog.Level) Level {
	switch {
	case l >= slogLevelCritical:
		return LevelCritical
	case l >= slog.LevelError:
		return LevelError
	case l >= slog.LevelWarn:
		return LevelWarning
	case l >= slog.LevelInfo:
		return LevelInfo
	default:
		return LevelDebug
	}
}

// ParseLevel accepts level names case-insensitively, plus the aliases
// "warn" and "fatal".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	case "critical", "fatal":
		return LevelCritical, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	v, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}
