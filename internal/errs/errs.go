package errs

import "errors"

// 业务错误分类，service 层返回，response 层映射到 HTTP 状态码
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("not allowed")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
)
