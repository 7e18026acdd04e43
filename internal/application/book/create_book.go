package book

import (
	"context"

	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/pkg/metrics"
)

// CreateBookUseCase 图书创建用例
// 设计说明:
// 1. 应用层负责用例编排,业务规则校验由领域服务负责
// 2. OwnerID来自认证上下文而非请求体,客户端不能指定归属者
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建图书创建用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService}
}

// CreateBookRequest 创建请求DTO
type CreateBookRequest struct {
	Name       string
	Price      int64 // 价格(分)
	AuthorName string
	OwnerID    *uint // 来自认证中间件,匿名时为nil
}

// Execute 执行创建用例
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookDTO, error) {
	b, err := uc.bookService.Create(ctx, req.Name, req.Price, req.AuthorName, req.OwnerID)
	if err != nil {
		return nil, err
	}

	metrics.BooksCreatedTotal.Inc()

	// 新建图书不可能有点赞
	return toDTO(b, 0), nil
}
