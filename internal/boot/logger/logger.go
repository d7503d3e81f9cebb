package logger

import (
	"context"
	"fmt"

	"github.com/x-thooh/duallog/pkg/log"
	"github.com/x-thooh/duallog/pkg/log/xslog"
)

// InitLogger 日志
func InitLogger(cfg *log.Config) (log.Logger, func(), error) {
	lg, cleanup, err := xslog.Setup(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return lg, cleanup, nil
}

// DefaultLogger adapts log.Logger to the printf style of transport.Logger.
type DefaultLogger struct {
	Lg log.Logger
}

func (l *DefaultLogger) Debugf(format string, a ...interface{}) {
	l.Lg.Debug(context.Background(), fmt.Sprintf(format, a...))
}

func (l *DefaultLogger) Infof(format string, a ...interface{}) {
	l.Lg.Info(context.Background(), fmt.Sprintf(format, a...))
}

func (l *DefaultLogger) Warnf(format string, a ...interface{}) {
	l.Lg.Warn(context.Background(), fmt.Sprintf(format, a...))
}

func (l *DefaultLogger) Errorf(format string, a ...interface{}) {
	l.Lg.Error(context.Background(), fmt.Sprintf(format, a...))
}
