package service

import (
	"Revamp/pkg/upstream"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(FavoriteService), "*"),
	wire.Bind(new(IFavoriteService), new(*FavoriteService)),

	wire.Struct(new(AuthService), "*"),
	wire.Bind(new(IAuthService), new(*AuthService)),

	wire.Struct(new(ZoneService), "*"),
	wire.Bind(new(IZoneService), new(*ZoneService)),

	upstream.New,
	wire.Bind(new(ZoneFetcher), new(*upstream.Client)),

	NewZoneCron,
)
