package errors

import "errors"

// ── 存储层通用错误（memory 与 postgres 实现共用） ──

var (
	// ErrRecordNotFound 记录不存在
	ErrRecordNotFound = errors.New("记录不存在")

	// ErrStatusConflict 状态比较交换失败：记录状态已被其他操作修改
	ErrStatusConflict = errors.New("记录状态已被其他操作修改，请刷新后重试")

	// ErrDuplicateID 主键冲突
	ErrDuplicateID = errors.New("记录 ID 已存在")
)
