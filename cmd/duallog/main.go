package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/x-thooh/duallog/internal/boot/logger"
	"github.com/x-thooh/duallog/internal/config"
	"github.com/x-thooh/duallog/internal/service/demo"
	"github.com/x-thooh/duallog/internal/service/emitter"
	"github.com/x-thooh/duallog/pkg/app"
	"github.com/x-thooh/duallog/pkg/log"
	"github.com/x-thooh/duallog/pkg/trace"
	"github.com/x-thooh/duallog/pkg/util"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	name    = "duallog"
	Version = "dev"
)

type runner struct {
	app     *app.App
	demo    *demo.Demo
	emitter *emitter.Emitter
}

func newApp(entity *config.Entity, lg log.Logger) *app.App {
	id := trace.GenerateTraceID()
	return app.New(
		app.ID(id),
		app.Name(name),
		app.Version(Version),
		app.Metadata(map[string]string{"env": entity.Env}),
		app.Logger(&logger.DefaultLogger{Lg: lg}),
	)
}

type flags struct {
	env          string
	conf         string
	dir          string
	logName      string
	consoleLevel string
	maxBytes     int64
	maxBackups   int
	rotation     string
}

func (f *flags) load(cmd *cobra.Command) (*config.Entity, error) {
	entity := config.Default(f.env)
	if f.conf != "" {
		var err error
		if entity, err = config.LoadConfig(util.AbPath(f.conf), f.env); err != nil {
			return nil, err
		}
	}
	lc := entity.Logger
	fs := cmd.Flags()
	if fs.Changed("dir") {
		lc.Dir = f.dir
	}
	if fs.Changed("name") {
		lc.Name = f.logName
	}
	if fs.Changed("console-level") {
		level, err := log.ParseLevel(f.consoleLevel)
		if err != nil {
			return nil, err
		}
		lc.ConsoleLevel = level
	}
	if fs.Changed("max-bytes") {
		lc.MaxBytes = f.maxBytes
	}
	if fs.Changed("max-backups") {
		lc.MaxBackups = f.maxBackups
	}
	if fs.Changed("rotation") {
		lc.Rotation = f.rotation
	}
	return entity, nil
}

func run(f *flags, cmd *cobra.Command, tweak func(*config.Entity), task func(r *runner) app.Task) error {
	entity, err := f.load(cmd)
	if err != nil {
		return err
	}
	if tweak != nil {
		tweak(entity)
	}
	r, cleanup, err := wireRunner(entity)
	if err != nil {
		return err
	}
	defer cleanup()
	return r.app.Run(task(r))
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	rootCmd := &cobra.Command{
		Use:           name,
		Short:         "Log to a rotating logfile and the console at the same time",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&f.env, "env", "prod", "env: dev, test, prod")
	pf.StringVar(&f.conf, "conf", "", "directory holding configs.<env>.yaml (default: built-in config)")
	pf.StringVar(&f.dir, "dir", "log", "log directory")
	pf.StringVar(&f.logName, "name", "log", "logfile base name")
	pf.StringVar(&f.consoleLevel, "console-level", "warning", "minimum level shown on the console")
	pf.Int64Var(&f.maxBytes, "max-bytes", 1024*1024, "rotate the logfile at this size, 0 disables rotation")
	pf.IntVar(&f.maxBackups, "max-backups", 100, "number of rotated logfiles to keep")
	pf.StringVar(&f.rotation, "rotation", log.RotationNumbered, "rotation backend: numbered, lumberjack")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Emit one message per level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(f, cmd, nil, func(r *runner) app.Task { return r.demo })
		},
	}

	var count, poolSize int
	stressCmd := &cobra.Command{
		Use:   "stress",
		Short: "Write many messages concurrently to exercise rotation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tweak := func(entity *config.Entity) {
				if cmd.Flags().Changed("count") {
					entity.Emitter.Count = count
				}
				if cmd.Flags().Changed("pool-size") {
					entity.Emitter.PoolSize = poolSize
				}
			}
			return run(f, cmd, tweak, func(r *runner) app.Task { return r.emitter })
		},
	}
	stressCmd.Flags().IntVar(&count, "count", 99999, "number of messages")
	stressCmd.Flags().IntVar(&poolSize, "pool-size", 8, "number of concurrent writers")

	rootCmd.AddCommand(demoCmd, stressCmd)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
