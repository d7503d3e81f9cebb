package xslog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/valyala/bytebufferpool"
	"github.com/x-thooh/duallog/pkg/log"
)

const (
	// 2018-11-15 15:35:59,123
	fileTimeLayout = "2006-01-02 15:04:05,000"
	fileLevelWidth = 8
)

// textHandler writes one line per record:
//
//	[time ]LEVEL[padding]: message[ key=value...]
type textHandler struct {
	mu    *sync.Mutex
	out   io.Writer
	level slog.Leveler

	timeLayout string
	levelWidth int
	withAttrs  bool

	attrs  []slog.Attr
	groups []string
}

// newFileHandler formats like "2018-11-15 15:35:59,123 ERROR   : boom".
func newFileHandler(w io.Writer, level slog.Leveler) *textHandler {
	return &textHandler{
		mu:         &sync.Mutex{},
		out:        w,
		level:      level,
		timeLayout: fileTimeLayout,
		levelWidth: fileLevelWidth,
		withAttrs:  true,
	}
}

// newConsoleHandler formats like "ERROR: boom".
func newConsoleHandler(w io.Writer, level slog.Leveler) *textHandler {
	return &textHandler{
		mu:    &sync.Mutex{},
		out:   w,
		level: level,
	}
}

func (h *textHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *textHandler) Handle(_ context.Context, r slog.Record) error {
	b := bytebufferpool.Get()
	defer bytebufferpool.Put(b)

	if h.timeLayout != "" && !r.Time.IsZero() {
		b.B = r.Time.AppendFormat(b.B, h.timeLayout)
		b.WriteByte(' ')
	}
	name := log.LevelOf(r.Level).String()
	b.WriteString(name)
	for i := len(name); i < h.levelWidth; i++ {
		b.WriteByte(' ')
	}
	b.WriteString(": ")
	b.WriteString(r.Message)

	if h.withAttrs {
		for _, attr := range h.attrs {
			appendAttr(b, "", attr)
		}
		prefix := groupPrefix(h.groups)
		r.Attrs(func(attr slog.Attr) bool {
			appendAttr(b, prefix, attr)
			return true
		})
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(b.B)
	return err
}

func (h *textHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	newH := *h
	prefix := groupPrefix(h.groups)
	newH.attrs = append([]slog.Attr{}, h.attrs...)
	for _, attr := range attrs {
		attr.Key = prefix + attr.Key
		newH.attrs = append(newH.attrs, attr)
	}
	return &newH
}

func (h *textHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.groups = append(append([]string{}, h.groups...), name)
	return &newH
}

func groupPrefix(groups []string) string {
	var prefix string
	for _, g := range groups {
		prefix += g + "."
	}
	return prefix
}

func appendAttr(b *bytebufferpool.ByteBuffer, prefix string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}
	if attr.Value.Kind() == slog.KindGroup {
		if attr.Key != "" {
			prefix += attr.Key + "."
		}
		for _, a := range attr.Value.Group() {
			appendAttr(b, prefix, a)
		}
		return
	}
	fmt.Fprintf(b, " %s%s=%v", prefix, attr.Key, attr.Value)
}

// fanoutHandler hands every record to each sink whose own level admits it.
type fanoutHandler struct {
	sinks []slog.Handler
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range h.sinks {
		if s.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, s := range h.sinks {
		if !s.Enabled(ctx, r.Level) {
			continue
		}
		if err := s.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sinks := make([]slog.Handler, len(h.sinks))
	for i, s := range h.sinks {
		sinks[i] = s.WithAttrs(attrs)
	}
	return &fanoutHandler{sinks: sinks}
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	sinks := make([]slog.Handler, len(h.sinks))
	for i, s := range h.sinks {
		sinks[i] = s.WithGroup(name)
	}
	return &fanoutHandler{sinks: sinks}
}
