// Package rotate implements a size-bounded logfile that keeps a fixed number
// of numbered backups: name, name.1, ..., name.N, where name.1 is the most
// recent archive and name.N the oldest.
package rotate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

var _ io.WriteCloser = (*File)(nil)

// File is an io.WriteCloser that rotates once it reaches MaxBytes.
// It is safe for concurrent use.
type File struct {
	filename   string
	maxBytes   int64
	maxBackups int

	mu     sync.Mutex
	file   *os.File
	size   int64
	closed bool
}

// Open opens filename for appending. A maxBytes of zero or less disables
// rotation, and so does a maxBackups of zero: the file then keeps growing.
func Open(filename string, maxBytes int64, maxBackups int) (*File, error) {
	f := &File{
		filename:   filename,
		maxBytes:   maxBytes,
		maxBackups: maxBackups,
	}
	if err := f.open(os.O_APPEND); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) Filename() string {
	return f.filename
}

// Write writes p as a single unit. If p would bring the active file to
// MaxBytes the file is rotated first, unless it is still empty or no backups
// are kept.
func (f *File) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0, os.ErrClosed
	}
	// a failed rotation leaves the file closed; pick it up again
	if f.file == nil {
		if err := f.open(os.O_APPEND); err != nil {
			return 0, err
		}
	}
	if f.maxBytes > 0 && f.maxBackups > 0 && f.size > 0 && f.size+int64(len(p)) >= f.maxBytes {
		if err := f.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := f.file.Write(p)
	f.size += int64(n)
	return n, err
}

// Rotate archives the active file regardless of its size. It is a no-op
// without backups.
func (f *File) Rotate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rotate()
}

func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}

func (f *File) open(flag int) error {
	file, err := os.OpenFile(f.filename, os.O_CREATE|os.O_WRONLY|flag, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	fi, err := file.Stat()
	if err != nil {
		file.Close()
		return fmt.Errorf("stat log file: %w", err)
	}
	f.file = file
	f.size = fi.Size()
	return nil
}

func (f *File) rotate() error {
	if f.closed {
		return os.ErrClosed
	}
	if f.maxBackups <= 0 {
		return nil
	}
	if f.file != nil {
		if err := f.file.Close(); err != nil {
			return fmt.Errorf("close log file: %w", err)
		}
		f.file = nil
	}
	// name.N-1 -> name.N drops the oldest archive
	for i := f.maxBackups - 1; i > 0; i-- {
		src, dst := f.backupName(i), f.backupName(i+1)
		if err := os.Rename(src, dst); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("rotate %s: %w", src, err)
		}
	}
	if err := os.Rename(f.filename, f.backupName(1)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("rotate %s: %w", f.filename, err)
	}
	return f.open(os.O_TRUNC)
}

func (f *File) backupName(i int) string {
	return fmt.Sprintf("%s.%d", f.filename, i)
}
