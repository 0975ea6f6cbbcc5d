package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("unknown status value")
	ErrInvalidTransition = errors.New("status transition not allowed")
)
