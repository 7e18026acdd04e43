package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书,回填自增ID
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书,不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书,不存在返回ErrBookNotFound
	Delete(ctx context.Context, id uint) error

	// List 查询图书列表
	// 无过滤条件时返回全部图书,按插入顺序(ID升序)
	List(ctx context.Context, params ListParams) ([]*Book, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Price  *int64 // 价格精确过滤(分),nil表示不过滤
	Search string // 子串搜索(不区分大小写),命中书名或作者名
}
