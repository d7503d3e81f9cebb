package config

import (
	"github.com/x-thooh/duallog/internal/service/emitter"
	"github.com/x-thooh/duallog/pkg/log"
)

type Entity struct {
	*Base
	Logger  *log.Config     `yaml:"logger"`
	Emitter *emitter.Config `yaml:"emitter"`
}

type Base struct {
	Env string `yaml:"env"`
}

func RegisterLogger(entity *Entity) *log.Config {
	return entity.Logger
}

func RegisterEmitter(entity *Entity) *emitter.Config {
	return entity.Emitter
}
