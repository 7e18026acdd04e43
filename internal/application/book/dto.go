package book

import (
	"context"

	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/internal/domain/relation"
)

// BookDTO 应用层图书DTO
// 设计说明:
// 1. 不直接返回领域实体,领域模型变更不影响API契约
// 2. Price保持"分"为单位,两位小数的字符串格式化在HTTP层完成
// 3. LikesCount在读取时实时统计,不是图书表上的冗余字段
type BookDTO struct {
	ID         uint
	Name       string
	Price      int64 // 价格(分)
	AuthorName string
	OwnerID    *uint
	LikesCount int64
	CreatedAt  string
}

func toDTO(b *book.Book, likes int64) *BookDTO {
	return &BookDTO{
		ID:         b.ID,
		Name:       b.Name,
		Price:      b.Price,
		AuthorName: b.AuthorName,
		OwnerID:    b.OwnerID,
		LikesCount: likes,
		CreatedAt:  b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// likesFor 批量查询一组图书的点赞数
func likesFor(ctx context.Context, relationService relation.Service, books []*book.Book) (map[uint]int64, error) {
	ids := make([]uint, len(books))
	for i, b := range books {
		ids[i] = b.ID
	}
	return relationService.LikesCount(ctx, ids)
}
