package emitter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants"
	"github.com/x-thooh/duallog/pkg/log"
)

type Config struct {
	Count    int    `yaml:"count"`
	PoolSize int    `yaml:"pool_size"`
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Count:    99999,
		PoolSize: 8,
		Level:    "error",
		Format:   "This is test log message no. %06d.",
	}
}

// leveled is satisfied by xslog.Logger.
type leveled interface {
	Log(ctx context.Context, level log.Level, msg string, args ...any)
}

// Emitter floods the logger with numbered messages from a worker pool so
// that rotation and concurrent emission can be observed.
type Emitter struct {
	cfg   *Config
	lg    log.Logger
	level log.Level
	pool  *ants.Pool
}

func New(cfg *Config, lg log.Logger) (*Emitter, func(), error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize, ants.WithPreAlloc(true))
	if err != nil {
		return nil, nil, err
	}
	return &Emitter{
			cfg:   cfg,
			lg:    lg,
			level: level,
			pool:  pool,
		}, func() {
			pool.Release()
		}, nil
}

func (e *Emitter) Name() string {
	return "emitter"
}

// Run emits messages 1..Count. It stops submitting once ctx is done and waits
// for submitted messages to be written.
func (e *Emitter) Run(ctx context.Context) error {
	begin := time.Now()
	var wg sync.WaitGroup
	defer wg.Wait()

	for n := 1; n <= e.cfg.Count; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		wg.Add(1)
		if err := e.pool.Submit(func() {
			defer wg.Done()
			e.emit(ctx, fmt.Sprintf(e.cfg.Format, n))
		}); err != nil {
			wg.Done()
			return fmt.Errorf("submit message %d: %w", n, err)
		}
	}
	wg.Wait()
	e.lg.Info(ctx, "emitter finished", "count", e.cfg.Count, "duration", time.Since(begin).String())
	return nil
}

func (e *Emitter) emit(ctx context.Context, msg string) {
	if l, ok := e.lg.(leveled); ok {
		l.Log(ctx, e.level, msg)
		return
	}
	switch {
	case e.level >= log.LevelCritical:
		e.lg.Critical(ctx, msg)
	case e.level >= log.LevelError:
		e.lg.Error(ctx, msg)
	case e.level >= log.LevelWarning:
		e.lg.Warn(ctx, msg)
	case e.level >= log.LevelInfo:
		e.lg.Info(ctx, msg)
	default:
		e.lg.Debug(ctx, msg)
	}
}
