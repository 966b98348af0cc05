package server

import (
	"Revamp/handler"
)

type Handlers struct {
	Auth     *handler.Auth
	Favorite *handler.Favorite
	Zone     *handler.Zone
}
