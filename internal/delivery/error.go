package delivery

import "errors"

var (
	ErrAssignmentNotFound = errors.New("delivery assignment not found")
	ErrRequestNotFound    = errors.New("delivery request not found")
	ErrInvalidTransition  = errors.New("status transition not allowed")
	ErrAlreadyDecided     = errors.New("delivery request already decided")
	ErrNotAssigned        = errors.New("assignment belongs to another partner")
)
