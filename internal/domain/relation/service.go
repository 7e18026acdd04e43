package relation

import (
	"context"
)

// Service 用户-图书关系领域服务接口
// 设计说明:
// 1. Patch走get-or-create:首次操作时自动建立关系行
// 2. 点赞数在读取时实时统计,不在图书表上冗余计数字段
type Service interface {
	// Patch 部分更新用户对图书的关系
	// 评分非法时整个更新不生效(包括不创建已有字段的修改)
	Patch(ctx context.Context, userID, bookID uint, p Patch) (*UserBookRelation, error)

	// LikesCount 统计一批图书的点赞数
	LikesCount(ctx context.Context, bookIDs []uint) (map[uint]int64, error)
}

type service struct {
	repo Repository
}

// NewService 创建关系领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Patch 部分更新关系
func (s *service) Patch(ctx context.Context, userID, bookID uint, p Patch) (*UserBookRelation, error) {
	// 先校验再落库:非法评分时连同Like/InBookmarks的修改一起拒绝
	if p.Rate != nil && (*p.Rate < MinRate || *p.Rate > MaxRate) {
		return nil, ErrInvalidRate
	}

	rel, err := s.repo.GetOrCreate(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	if err := rel.Apply(p); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, rel); err != nil {
		return nil, err
	}

	return rel, nil
}

// LikesCount 统计点赞数
func (s *service) LikesCount(ctx context.Context, bookIDs []uint) (map[uint]int64, error) {
	if len(bookIDs) == 0 {
		return map[uint]int64{}, nil
	}
	return s.repo.LikesCount(ctx, bookIDs)
}
