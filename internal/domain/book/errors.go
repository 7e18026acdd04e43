package book

import (
	apperrors "github.com/xiebiao/bookhub/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrPermissionDenied 非归属者且非管理员执行写操作
	// 提示文案与对外API约定保持一致,不要改动
	ErrPermissionDenied = apperrors.New(apperrors.ErrCodeForbidden, "You do not have permission to perform this action.")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidPrice, "价格必须大于0")

	// ErrEmptyName 书名为空
	ErrEmptyName = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空")
)
