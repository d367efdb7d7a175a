package service

import "errors"

// ── 跨模块通用业务错误 ──

var (
	ErrValidation               = errors.New("参数校验失败")
	ErrPermissionDenied         = errors.New("当前状态不允许该操作")
	ErrProblemStatementNotFound = errors.New("问题陈述不存在")
	ErrInvalidTransition        = errors.New("非法的状态迁移")
)

// ValidationError 带字段信息的校验错误，errors.Is(err, ErrValidation) 为真
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Is 使 ValidationError 匹配 ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
