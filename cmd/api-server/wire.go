//go:build wireinject
// +build wireinject

package main

import (
	"Revamp/config"
	"Revamp/dao"
	"Revamp/dao/cache"
	"Revamp/handler"
	"Revamp/pkg/client"
	"Revamp/pkg/database"
	"Revamp/pkg/server"
	"Revamp/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) (*server.AppProvider, error) {
	wire.Build(

		client.NewRedisClient,
		database.NewDB,
		server.NewGinEngine,
		cache.ProviderSet,

		handler.NewGuard,
		handler.NewLimiter,
		handler.NewHashID,
		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.Favorite), "*"),
		wire.Struct(new(handler.Zone), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),

		dao.ProviderSet,

		service.ProviderSet,
	)
	return nil, nil
}
