package store

import "errors"

var (
	ErrStoreNotFound = errors.New("store not found")
	ErrNotOwner      = errors.New("store does not belong to this seller")
	ErrSlugTaken     = errors.New("store slug already in use")
)
