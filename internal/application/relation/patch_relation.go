package relation

import (
	"context"

	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/internal/domain/relation"
	"github.com/xiebiao/bookhub/pkg/metrics"
)

// PatchRelationUseCase 用户-图书关系部分更新用例
// 设计说明:
// 1. 先确认图书存在(不存在返回404),再做get-or-create
// 2. 关系行只属于当前用户,不需要额外的权限校验
// 3. 三个字段均可选,未出现的字段保持原值
type PatchRelationUseCase struct {
	bookService     book.Service
	relationService relation.Service
}

// NewPatchRelationUseCase 创建关系更新用例
func NewPatchRelationUseCase(bookService book.Service, relationService relation.Service) *PatchRelationUseCase {
	return &PatchRelationUseCase{
		bookService:     bookService,
		relationService: relationService,
	}
}

// PatchRelationRequest 关系更新请求DTO
type PatchRelationRequest struct {
	Like        *bool
	InBookmarks *bool
	Rate        *int
}

// RelationDTO 关系响应DTO
type RelationDTO struct {
	ID          uint
	UserID      uint
	BookID      uint
	Like        bool
	InBookmarks bool
	Rate        *int
}

// Execute 执行关系更新
func (uc *PatchRelationUseCase) Execute(ctx context.Context, userID, bookID uint, req PatchRelationRequest) (*RelationDTO, error) {
	// 图书不存在时直接404,避免为幽灵图书创建关系行
	if _, err := uc.bookService.Get(ctx, bookID); err != nil {
		return nil, err
	}

	rel, err := uc.relationService.Patch(ctx, userID, bookID, relation.Patch{
		Like:        req.Like,
		InBookmarks: req.InBookmarks,
		Rate:        req.Rate,
	})
	if err != nil {
		return nil, err
	}

	if req.Like != nil {
		metrics.RelationPatchesTotal.WithLabelValues("like").Inc()
	}
	if req.InBookmarks != nil {
		metrics.RelationPatchesTotal.WithLabelValues("in_bookmarks").Inc()
	}
	if req.Rate != nil {
		metrics.RelationPatchesTotal.WithLabelValues("rate").Inc()
	}

	return &RelationDTO{
		ID:          rel.ID,
		UserID:      rel.UserID,
		BookID:      rel.BookID,
		Like:        rel.Like,
		InBookmarks: rel.InBookmarks,
		Rate:        rel.Rate,
	}, nil
}
