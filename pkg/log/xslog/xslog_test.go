package xslog

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x-thooh/duallog/pkg/log"
	"github.com/x-thooh/duallog/pkg/trace"
)

var fixedTime = time.Date(2018, 11, 15, 15, 35, 59, 0, time.Local)

func setLogger(t *testing.T, cfg *log.Config) (*Logger, *bytes.Buffer) {
	t.Helper()
	console := &bytes.Buffer{}
	lg, cleanup, err := Setup(cfg, WithClock(func() time.Time { return fixedTime }), WithConsole(console))
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return lg, console
}

func testConfig(dir string) *log.Config {
	cfg := log.DefaultConfig()
	cfg.Dir = dir
	cfg.Global = false
	return cfg
}

func readLines(t *testing.T, name string) []string {
	t.Helper()
	b, err := os.ReadFile(name)
	require.NoError(t, err)
	s := strings.TrimSuffix(string(b), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestSetupCreatesDirectoryAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	lg, _ := setLogger(t, testConfig(dir))

	assert.Equal(t, filepath.Join(dir, "log-20181115-153559.log"), lg.FileName())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "log-20181115-153559.log", entries[0].Name())
}

func TestSetupCustomNameAndFormat(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Name = "worker"
	cfg.FileNameFormat = "{name}_{year}{month}{day}.txt"
	lg, _ := setLogger(t, cfg)
	assert.Equal(t, "worker_20181115.txt", filepath.Base(lg.FileName()))
	assert.FileExists(t, lg.FileName())
}

func TestSetupPathConflict(t *testing.T) {
	parent := t.TempDir()
	taken := filepath.Join(parent, "log")
	require.NoError(t, os.WriteFile(taken, []byte("not a directory"), 0o644))

	cfg := testConfig(taken)
	cfg.Global = true
	before := slog.Default()

	lg, cleanup, err := Setup(cfg, WithConsole(&bytes.Buffer{}))
	require.ErrorIs(t, err, log.ErrPathConflict)
	assert.Nil(t, lg)
	assert.Nil(t, cleanup)
	assert.Same(t, before, slog.Default())

	entries, err := os.ReadDir(parent)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSetupLevelRouting(t *testing.T) {
	ctx := context.Background()
	lg, console := setLogger(t, testConfig(t.TempDir()))

	lg.Debug(ctx, "debug message")
	lg.Info(ctx, "info message")
	lg.Warn(ctx, "warning message")
	lg.Error(ctx, "error message")
	lg.Critical(ctx, "critical message")

	lines := readLines(t, lg.FileName())
	require.Len(t, lines, 5)
	for i, level := range []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"} {
		assert.Contains(t, lines[i], " "+level)
	}
	assert.Equal(t, "WARNING: warning message\nERROR: error message\nCRITICAL: critical message\n", console.String())
}

func TestSetupConsoleThreshold(t *testing.T) {
	levels := []log.Level{log.LevelDebug, log.LevelInfo, log.LevelWarning, log.LevelError, log.LevelCritical}
	for _, threshold := range levels {
		t.Run(threshold.String(), func(t *testing.T) {
			cfg := testConfig(t.TempDir())
			cfg.ConsoleLevel = threshold
			lg, console := setLogger(t, cfg)

			for _, level := range levels {
				lg.Log(context.Background(), level, "msg")
			}

			assert.Len(t, readLines(t, lg.FileName()), len(levels))
			var want strings.Builder
			for _, level := range levels {
				if level >= threshold {
					want.WriteString(level.String() + ": msg\n")
				}
			}
			assert.Equal(t, want.String(), console.String())
		})
	}
}

func TestSetupRecordFormat(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.ConsoleLevel = log.LevelError
	lg, console := setLogger(t, cfg)

	lg.Error(context.Background(), "boom")

	lines := readLines(t, lg.FileName())
	require.Len(t, lines, 1)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3} ERROR   : boom$`, lines[0])
	assert.Equal(t, "ERROR: boom\n", console.String())
}

func TestSetupDebugOnlyInFile(t *testing.T) {
	lg, console := setLogger(t, testConfig(t.TempDir()))

	lg.Debug(context.Background(), "quiet")

	lines := readLines(t, lg.FileName())
	require.Len(t, lines, 1)
	assert.True(t, strings.HasSuffix(lines[0], " DEBUG   : quiet"))
	assert.Empty(t, console.String())
}

func TestSetupAttributesOnlyInFile(t *testing.T) {
	cfg := testConfig(t.TempDir())
	lg, console := setLogger(t, cfg)

	ctx := trace.Set(context.Background(), "abc123")
	lg.Error(ctx, "failed", "attempt", 3)
	lg.Slog().WithGroup("req").Error("grouped", "id", 7)

	lines := readLines(t, lg.FileName())
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "ERROR   : failed trace_id=abc123 attempt=3"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "ERROR   : grouped req.id=7"), lines[1])
	assert.Equal(t, "ERROR: failed\nERROR: grouped\n", console.String())
}

func TestSetupRotation(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.MaxBytes = 1024
	cfg.MaxBackups = 3
	cfg.ConsoleLevel = log.LevelCritical
	lg, _ := setLogger(t, cfg)

	// well over MaxBytes * (MaxBackups + 1)
	for i := 1; i <= 500; i++ {
		lg.Error(context.Background(), fmt.Sprintf("This is test log message no. %06d.", i))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
	for _, e := range entries {
		fi, err := e.Info()
		require.NoError(t, err)
		assert.Less(t, fi.Size(), int64(1024))
	}

	// the newest record is in the active file, the oldest ones are gone
	active := readLines(t, lg.FileName())
	assert.True(t, strings.HasSuffix(active[len(active)-1], "no. 000500."))
	oldest := readLines(t, lg.FileName()+".3")
	assert.False(t, strings.HasSuffix(oldest[0], "no. 000001."))
}

func TestSetupLumberjack(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Rotation = log.RotationLumberjack
	cfg.MaxBytes = 10
	lg, console := setLogger(t, cfg)

	assert.FileExists(t, lg.FileName())
	lg.Warn(context.Background(), "via lumberjack")

	lines := readLines(t, lg.FileName())
	require.Len(t, lines, 1)
	assert.True(t, strings.HasSuffix(lines[0], "WARNING : via lumberjack"))
	assert.Equal(t, "WARNING: via lumberjack\n", console.String())
}

func TestLumberjackSize(t *testing.T) {
	assert.Equal(t, 0, lumberjackSize(0))
	assert.Equal(t, 1, lumberjackSize(1))
	assert.Equal(t, 1, lumberjackSize(megabyte))
	assert.Equal(t, 2, lumberjackSize(megabyte+1))
	assert.Equal(t, 10, lumberjackSize(10*megabyte))
}

func TestSetupUnknownOptions(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.Rotation = "hourly"
	_, _, err := Setup(cfg, WithConsole(&bytes.Buffer{}))
	require.Error(t, err)

	cfg = testConfig(dir)
	cfg.Console = "printer"
	_, _, err = Setup(cfg)
	require.Error(t, err)
}

func TestSetupZeroConfigUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	lg, console := setLogger(t, &log.Config{Dir: dir})

	assert.Equal(t, "log-20181115-153559.log", filepath.Base(lg.FileName()))
	lg.Info(context.Background(), "hidden")
	lg.Warn(context.Background(), "shown")
	assert.Equal(t, "WARNING: shown\n", console.String())
}

func TestSetupGlobalReplacesDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg := testConfig(t.TempDir())
	cfg.Global = true
	_, first := setLogger(t, cfg)
	_, second := setLogger(t, cfg)

	slog.Warn("once")

	assert.Empty(t, first.String())
	assert.Equal(t, "WARNING: once\n", second.String())
}
