package relation

import (
	apperrors "github.com/xiebiao/bookhub/pkg/errors"
)

// 用户-图书关系领域错误定义
var (
	// ErrInvalidRate 评分超出允许区间
	ErrInvalidRate = apperrors.New(apperrors.ErrCodeInvalidRate, "评分必须在1到5之间")
)
