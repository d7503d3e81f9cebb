package demo

import (
	"context"

	"github.com/x-thooh/duallog/pkg/log"
)

// Demo emits one message per level to show which sink receives what.
type Demo struct {
	lg log.Logger
}

func New(lg log.Logger) *Demo {
	return &Demo{lg: lg}
}

func (d *Demo) Name() string {
	return "demo"
}

func (d *Demo) Run(ctx context.Context) error {
	d.lg.Debug(ctx, "Debug messages are only sent to the logfile.")
	d.lg.Info(ctx, "Info messages are not shown on the console, too.")
	d.lg.Warn(ctx, "Warnings appear both on the console and in the logfile.")
	d.lg.Error(ctx, "Errors get the same treatment.")
	d.lg.Critical(ctx, "And critical messages, of course.")
	return nil
}
