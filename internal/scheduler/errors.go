package scheduler

import "errors"

var (
	ErrInvalidCommand   = errors.New("command must be an absolute path to an existing executable")
	ErrInvalidInterval  = errors.New("invalid interval")
	ErrLogPath          = errors.New("log path unavailable")
	ErrStoreUnavailable = errors.New("scheduler store unavailable")
	ErrSuperuser        = errors.New("refusing to run as the superuser")
)
