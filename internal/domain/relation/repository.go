package relation

import (
	"context"
)

// Repository 用户-图书关系仓储接口
type Repository interface {
	// GetOrCreate 获取关系行,不存在则创建零值行
	// 并发冲突时以数据库唯一索引兜底,返回已存在的行
	GetOrCreate(ctx context.Context, userID, bookID uint) (*UserBookRelation, error)

	// Update 更新关系行
	Update(ctx context.Context, rel *UserBookRelation) error

	// LikesCount 统计一批图书的点赞数(like=true的行数)
	// 返回bookID到点赞数的映射,没有点赞的图书不出现在映射中
	LikesCount(ctx context.Context, bookIDs []uint) (map[uint]int64, error)
}
