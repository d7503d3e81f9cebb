//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"github.com/google/wire"
	"github.com/x-thooh/duallog/internal/boot/logger"
	"github.com/x-thooh/duallog/internal/config"
	"github.com/x-thooh/duallog/internal/service"
)

// wireRunner init runner.
func wireRunner(*config.Entity) (*runner, func(), error) {
	panic(wire.Build(
		config.ProviderSetConfig,
		logger.InitLogger,
		service.ProviderSetService,
		newApp,
		wire.Struct(new(runner), "*"),
	))
}
