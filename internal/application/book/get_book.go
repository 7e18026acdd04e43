package book

import (
	"context"

	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/internal/domain/relation"
)

// GetBookUseCase 图书详情查询用例
type GetBookUseCase struct {
	bookService     book.Service
	relationService relation.Service
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookService book.Service, relationService relation.Service) *GetBookUseCase {
	return &GetBookUseCase{
		bookService:     bookService,
		relationService: relationService,
	}
}

// Execute 执行详情查询
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookDTO, error) {
	b, err := uc.bookService.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	counts, err := uc.relationService.LikesCount(ctx, []uint{b.ID})
	if err != nil {
		return nil, err
	}

	return toDTO(b, counts[b.ID]), nil
}
