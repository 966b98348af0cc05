package config

import "errors"

var ErrMissingSecret = errors.New("SECRET_KEY must be set in production environment")
