package app

import (
	"context"
	"os"

	"github.com/x-thooh/duallog/pkg/app/transport"
)

type Option func(o *options)

type options struct {
	id       string
	name     string
	version  string
	metadata map[string]string

	ctx    context.Context
	sigs   []os.Signal
	logger transport.Logger
}

// ID with run id.
func ID(id string) Option {
	return func(o *options) { o.id = id }
}

// Name with program name.
func Name(name string) Option {
	return func(o *options) { o.name = name }
}

// Version with program version.
func Version(version string) Option {
	return func(o *options) { o.version = version }
}

// Metadata with run metadata.
func Metadata(md map[string]string) Option {
	return func(o *options) { o.metadata = md }
}

// Context with the parent context of every task.
func Context(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// Logger with lifecycle logger.
func Logger(logger transport.Logger) Option {
	return func(o *options) { o.logger = logger }
}
