package util

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const DefaultFileNameFormat = "{name}-{year}{month}{day}-{hour}{minute}{second}.log"

// ErrPathConflict is returned by EnsureDir when the path exists as a non-directory.
var ErrPathConflict = errors.New("path exists and is not a directory")

// EnsureDir cleans dir and creates it, with any missing parents, if it does
// not exist yet. The cleaned path is returned.
func EnsureDir(dir string) (string, error) {
	dir = filepath.Clean(dir)
	fi, err := os.Stat(dir)
	switch {
	case err == nil:
		if !fi.IsDir() {
			return "", fmt.Errorf("%w: %s", ErrPathConflict, dir)
		}
		return dir, nil
	case errors.Is(err, os.ErrNotExist):
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create log directory: %w", err)
		}
		return dir, nil
	default:
		return "", fmt.Errorf("stat log directory: %w", err)
	}
}

// RenderFileName expands the placeholders {name}, {year}, {month}, {day},
// {hour}, {minute} and {second} in format. Date and time fields are zero
// padded.
func RenderFileName(format, name string, t time.Time) string {
	if format == "" {
		format = DefaultFileNameFormat
	}
	r := strings.NewReplacer(
		"{name}", name,
		"{year}", fmt.Sprintf("%04d", t.Year()),
		"{month}", fmt.Sprintf("%02d", int(t.Month())),
		"{day}", fmt.Sprintf("%02d", t.Day()),
		"{hour}", fmt.Sprintf("%02d", t.Hour()),
		"{minute}", fmt.Sprintf("%02d", t.Minute()),
		"{second}", fmt.Sprintf("%02d", t.Second()),
	)
	return r.Replace(format)
}

// GetCurrentAbPathByCaller 获取当前执行文件绝对路径（go run）
func GetCurrentAbPathByCaller(skip int) string {
	var abPath string
	_, filename, _, ok := runtime.Caller(skip)
	if ok {
		abPath = path.Dir(filename)
	}
	return abPath
}

// AbPath resolves a relative file against the working directory, falling
// back to the caller's source directory when the working directory is unknown.
func AbPath(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, file)
	}
	return filepath.Join(GetCurrentAbPathByCaller(2), file)
}
