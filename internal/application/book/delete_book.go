package book

import (
	"context"
	"errors"

	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/pkg/metrics"
)

// DeleteBookUseCase 图书删除用例
type DeleteBookUseCase struct {
	bookService book.Service
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService}
}

// Execute 执行删除用例
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint, actor book.Actor) error {
	if err := uc.bookService.Delete(ctx, id, actor); err != nil {
		if errors.Is(err, book.ErrPermissionDenied) {
			metrics.BookMutationsDeniedTotal.Inc()
		}
		return err
	}

	metrics.BooksDeletedTotal.Inc()
	return nil
}
