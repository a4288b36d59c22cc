package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrInvalidFilter   = goerr.New("invalid filter")
	ErrInvalidInterval = goerr.New("invalid interval")
)
