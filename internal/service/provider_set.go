package service

import (
	"github.com/google/wire"
	"github.com/x-thooh/duallog/internal/service/demo"
	"github.com/x-thooh/duallog/internal/service/emitter"
)

var ProviderSetService = wire.NewSet(
	demo.New,
	emitter.New,
)
