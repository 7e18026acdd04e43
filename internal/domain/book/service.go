package book

import (
	"context"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装业务规则校验与权限策略
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// Create 创建图书
	// 业务规则:
	// - 书名必填
	// - 价格必须>0
	// - ownerID来自认证上下文,匿名创建时为nil
	Create(ctx context.Context, name string, price int64, authorName string, ownerID *uint) (*Book, error)

	// Get 根据ID获取图书详情
	Get(ctx context.Context, id uint) (*Book, error)

	// List 查询图书列表(公开接口,不需要权限校验)
	List(ctx context.Context, params ListParams) ([]*Book, error)

	// Update 全量更新图书
	// 业务规则:只有归属者或管理员可以修改;OwnerID不变
	Update(ctx context.Context, id uint, actor Actor, name string, price int64, authorName string) (*Book, error)

	// Delete 删除图书
	// 业务规则:只有归属者或管理员可以删除
	Delete(ctx context.Context, id uint, actor Actor) error
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create 创建图书
func (s *service) Create(ctx context.Context, name string, price int64, authorName string, ownerID *uint) (*Book, error) {
	if err := validateFields(name, price); err != nil {
		return nil, err
	}

	b := NewBook(name, price, authorName, ownerID)

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// Get 根据ID获取图书
func (s *service) Get(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// List 查询图书列表
func (s *service) List(ctx context.Context, params ListParams) ([]*Book, error) {
	return s.repo.List(ctx, params)
}

// Update 全量更新图书
func (s *service) Update(ctx context.Context, id uint, actor Actor, name string, price int64, authorName string) (*Book, error) {
	if err := validateFields(name, price); err != nil {
		return nil, err
	}

	// 1. 查询图书(先404后403:资源不存在时不泄露权限信息)
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 权限检查:归属者或管理员
	if !b.CanBeMutatedBy(actor) {
		return nil, ErrPermissionDenied
	}

	// 3. 更新并持久化
	b.Update(name, price, authorName)
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// Delete 删除图书
func (s *service) Delete(ctx context.Context, id uint, actor Actor) error {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !b.CanBeMutatedBy(actor) {
		return ErrPermissionDenied
	}

	return s.repo.Delete(ctx, id)
}

// validateFields 创建/更新共用的字段校验
func validateFields(name string, price int64) error {
	if name == "" {
		return ErrEmptyName
	}
	if price <= 0 {
		return ErrInvalidPrice
	}
	return nil
}
