package book

import (
	"context"

	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/internal/domain/relation"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 价格精确过滤与子串搜索可叠加(AND组合)
// 2. 无过滤条件时返回全部图书,按插入顺序
// 3. 点赞数批量统计,避免N+1查询
type ListBooksUseCase struct {
	bookService     book.Service
	relationService relation.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service, relationService relation.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService:     bookService,
		relationService: relationService,
	}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Price  *int64 // 价格精确过滤(分),nil表示不过滤
	Search string // 子串搜索,命中书名或作者名
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) ([]*BookDTO, error) {
	books, err := uc.bookService.List(ctx, book.ListParams{
		Price:  req.Price,
		Search: req.Search,
	})
	if err != nil {
		return nil, err
	}

	counts, err := likesFor(ctx, uc.relationService, books)
	if err != nil {
		return nil, err
	}

	list := make([]*BookDTO, len(books))
	for i, b := range books {
		list[i] = toDTO(b, counts[b.ID])
	}
	return list, nil
}
