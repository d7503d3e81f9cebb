package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Task is a unit of work run by App.
type Task interface {
	Name() string
	Run(ctx context.Context) error
}

// TaskFunc adapts a function to Task.
type TaskFunc struct {
	TaskName string
	Fn       func(ctx context.Context) error
}

func (t TaskFunc) Name() string                  { return t.TaskName }
func (t TaskFunc) Run(ctx context.Context) error { return t.Fn(ctx) }

// App runs tasks one after another until they finish, one fails, or a stop
// signal arrives.
type App struct {
	opts options
}

func New(opts ...Option) *App {
	o := options{
		ctx:  context.Background(),
		sigs: []os.Signal{syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &App{opts: o}
}

func (a *App) Instance() Instance {
	return Instance{
		ID:       a.opts.id,
		Name:     a.opts.name,
		Version:  a.opts.version,
		Metadata: a.opts.metadata,
	}
}

// Context is the parent context handed to tasks.
func (a *App) Context() context.Context {
	return a.opts.ctx
}

func (a *App) Run(tasks ...Task) error {
	ctx, stop := signal.NotifyContext(a.opts.ctx, a.opts.sigs...)
	defer stop()

	a.infof("app %s (%s) starting, id=%s", a.opts.name, a.opts.version, a.opts.id)
	for _, task := range tasks {
		begin := time.Now()
		a.debugf("task %s started", task.Name())
		if err := task.Run(ctx); err != nil {
			a.errorf("task %s failed after %s: %v", task.Name(), time.Since(begin), err)
			return fmt.Errorf("%s: %w", task.Name(), err)
		}
		a.debugf("task %s finished in %s", task.Name(), time.Since(begin))
		if ctx.Err() != nil {
			a.warnf("app %s interrupted", a.opts.name)
			return ctx.Err()
		}
	}
	a.infof("app %s stopped", a.opts.name)
	return nil
}

func (a *App) debugf(format string, args ...interface{}) {
	if a.opts.logger != nil {
		a.opts.logger.Debugf(format, args...)
	}
}

func (a *App) infof(format string, args ...interface{}) {
	if a.opts.logger != nil {
		a.opts.logger.Infof(format, args...)
	}
}

func (a *App) warnf(format string, args ...interface{}) {
	if a.opts.logger != nil {
		a.opts.logger.Warnf(format, args...)
	}
}

func (a *App) errorf(format string, args ...interface{}) {
	if a.opts.logger != nil {
		a.opts.logger.Errorf(format, args...)
	}
}
