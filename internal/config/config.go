package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/x-thooh/duallog/internal/service/emitter"
	"github.com/x-thooh/duallog/pkg/log"
	"gopkg.in/yaml.v3"
)

// Default is the configuration used when no config file is given.
func Default(env string) *Entity {
	return &Entity{
		Base: &Base{
			Env: env,
		},
		Logger:  log.DefaultConfig(),
		Emitter: emitter.DefaultConfig(),
	}
}

// LoadConfig reads <path>/configs.<env>.yaml on top of Default(env).
func LoadConfig(path string, env string) (*Entity, error) {
	path = filepath.Join(path, fmt.Sprintf("configs.%s.yaml", env))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default(env)
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Base == nil {
		cfg.Base = &Base{Env: env}
	}
	return cfg, nil
}
