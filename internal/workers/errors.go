package workers

import "errors"

var (
	ErrDuplicateTask  = errors.New("task with this label is already registered")
	ErrInvalidAddress = errors.New("invalid remote address")
)
