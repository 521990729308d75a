package config

import "errors"

var (
	ErrUnknownMoveCache = errors.New("unknown move cache backend")
	ErrNegativeDuration = errors.New("duration must not be negative")
	ErrUnknownLogLevel  = errors.New("unknown log level")
)
