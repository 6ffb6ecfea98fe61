package errors

import "errors"

var (
	ErrCredentialsUnavailable = errors.New("credentials unavailable")
	ErrNotFound               = errors.New("not found")
	ErrOperationFailed        = errors.New("operation failed")
	ErrPermissionDuplicate    = errors.New("permission already exists")
	ErrPermissionNotFound     = errors.New("permission not found")
)
