package xslog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/x-thooh/duallog/pkg/log"
	"github.com/x-thooh/duallog/pkg/log/rotate"
	"github.com/x-thooh/duallog/pkg/trace"
	"github.com/x-thooh/duallog/pkg/util"
)

const megabyte = 1024 * 1024

var _ log.Logger = (*Logger)(nil)

// Logger is the handle returned by Setup. It fans every record out to a
// rotating logfile and to the console.
type Logger struct {
	logger   *slog.Logger
	fileName string
}

type options struct {
	now     func() time.Time
	console io.Writer
}

type Option func(*options)

// WithClock overrides the clock used to name the logfile.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithConsole overrides the console stream selected by Config.Console.
func WithConsole(w io.Writer) Option {
	return func(o *options) {
		o.console = w
	}
}

// Setup creates cfg.Dir if needed, opens a timestamped logfile in it and
// returns a logger writing every record to that file and records at or above
// cfg.ConsoleLevel to the console. The returned func closes the logfile.
//
// Setup fails with log.ErrPathConflict when cfg.Dir exists as a file. Nothing
// is installed globally unless both sinks were created.
func Setup(cfg *log.Config, opts ...Option) (*Logger, func(), error) {
	o := &options{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	cfg = withDefaults(cfg)

	dir, err := util.EnsureDir(cfg.Dir)
	if err != nil {
		return nil, nil, err
	}
	fileName := filepath.Join(dir, util.RenderFileName(cfg.FileNameFormat, cfg.Name, o.now()))

	fileWriter, err := openFile(cfg, fileName)
	if err != nil {
		return nil, nil, err
	}
	consoleWriter := o.console
	if consoleWriter == nil {
		if consoleWriter, err = consoleStream(cfg.Console); err != nil {
			fileWriter.Close()
			return nil, nil, err
		}
	}

	l := slog.New(&fanoutHandler{sinks: []slog.Handler{
		newFileHandler(fileWriter, slog.LevelDebug),
		newConsoleHandler(consoleWriter, cfg.ConsoleLevel.Slog()),
	}})
	if cfg.Global {
		slog.SetDefault(l)
	}
	return &Logger{
			logger:   l,
			fileName: fileName,
		}, func() {
			fileWriter.Close()
		}, nil
}

func withDefaults(cfg *log.Config) *log.Config {
	def := log.DefaultConfig()
	if cfg == nil {
		return def
	}
	c := *cfg
	if c.Dir == "" {
		c.Dir = def.Dir
	}
	if c.Name == "" {
		c.Name = def.Name
	}
	if c.FileNameFormat == "" {
		c.FileNameFormat = def.FileNameFormat
	}
	if c.ConsoleLevel == 0 {
		c.ConsoleLevel = def.ConsoleLevel
	}
	return &c
}

func openFile(cfg *log.Config, fileName string) (io.WriteCloser, error) {
	switch strings.ToLower(cfg.Rotation) {
	case "", log.RotationNumbered:
		return rotate.Open(fileName, cfg.MaxBytes, cfg.MaxBackups)
	case log.RotationLumberjack:
		// lumberjack opens lazily; create the file now so it exists after Setup
		// and open errors surface here.
		f, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		f.Close()
		return &lumberjack.Logger{
			Filename:   fileName,
			MaxSize:    lumberjackSize(cfg.MaxBytes),
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}, nil
	default:
		return nil, fmt.Errorf("unknown rotation %q", cfg.Rotation)
	}
}

// lumberjackSize rounds maxBytes up to whole megabytes. Zero lets lumberjack
// fall back to its own default of 100 MB.
func lumberjackSize(maxBytes int64) int {
	if maxBytes <= 0 {
		return 0
	}
	return int((maxBytes + megabyte - 1) / megabyte)
}

func consoleStream(name string) (io.Writer, error) {
	switch strings.ToLower(name) {
	case "", log.ConsoleStderr:
		return os.Stderr, nil
	case log.ConsoleStdout:
		return os.Stdout, nil
	default:
		return nil, fmt.Errorf("unknown console stream %q", name)
	}
}

// FileName is the path of the active logfile.
func (x *Logger) FileName() string {
	return x.fileName
}

// Slog exposes the underlying slog logger for libraries that take one.
func (x *Logger) Slog() *slog.Logger {
	return x.logger
}

func (x *Logger) Debug(ctx context.Context, msg string, args ...any) {
	x.common(ctx).Log(ctx, slog.LevelDebug, msg, args...)
}

func (x *Logger) Info(ctx context.Context, msg string, args ...any) {
	x.common(ctx).Log(ctx, slog.LevelInfo, msg, args...)
}

func (x *Logger) Warn(ctx context.Context, msg string, args ...any) {
	x.common(ctx).Log(ctx, slog.LevelWarn, msg, args...)
}

func (x *Logger) Error(ctx context.Context, msg string, args ...any) {
	x.common(ctx).Log(ctx, slog.LevelError, msg, args...)
}

func (x *Logger) Critical(ctx context.Context, msg string, args ...any) {
	x.common(ctx).Log(ctx, log.LevelCritical.Slog(), msg, args...)
}

// Log logs msg at an arbitrary level.
func (x *Logger) Log(ctx context.Context, level log.Level, msg string, args ...any) {
	x.common(ctx).Log(ctx, level.Slog(), msg, args...)
}

func (x *Logger) common(ctx context.Context) *slog.Logger {
	if traceID := trace.Get(ctx); traceID != "" {
		return x.logger.With(slog.String(trace.GetCtxKey(), traceID))
	}
	return x.logger
}
