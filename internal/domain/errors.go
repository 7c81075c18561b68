package domain

import "errors"

// 错误分类：handler 层据此映射 HTTP 状态码
var (
	ErrValidation      = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrExternalService = errors.New("external service failure")
	ErrStorage         = errors.New("storage failure")
)
