package book

import (
	"context"
	"errors"

	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/internal/domain/relation"
	"github.com/xiebiao/bookhub/pkg/metrics"
)

// UpdateBookUseCase 图书更新用例
// 权限策略由领域层执行:归属者或管理员才能修改
type UpdateBookUseCase struct {
	bookService     book.Service
	relationService relation.Service
}

// NewUpdateBookUseCase 创建更新用例
func NewUpdateBookUseCase(bookService book.Service, relationService relation.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService:     bookService,
		relationService: relationService,
	}
}

// UpdateBookRequest 更新请求DTO(全量更新)
type UpdateBookRequest struct {
	Name       string
	Price      int64 // 价格(分)
	AuthorName string
}

// Execute 执行更新用例
func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, actor book.Actor, req UpdateBookRequest) (*BookDTO, error) {
	b, err := uc.bookService.Update(ctx, id, actor, req.Name, req.Price, req.AuthorName)
	if err != nil {
		if errors.Is(err, book.ErrPermissionDenied) {
			metrics.BookMutationsDeniedTotal.Inc()
		}
		return nil, err
	}

	counts, err := uc.relationService.LikesCount(ctx, []uint{b.ID})
	if err != nil {
		return nil, err
	}

	return toDTO(b, counts[b.ID]), nil
}
