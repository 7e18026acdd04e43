package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是图书聚合的根实体,包含图书目录的核心属性
// 2. 价格使用int64存储"分"为单位(避免浮点数精度问题),序列化时固定两位小数
// 3. OwnerID为创建者用户ID,创建时由认证上下文写入,之后客户端不可修改
// 4. OwnerID可为空(匿名导入的图书没有归属者)
type Book struct {
	ID         uint
	Name       string // 书名
	Price      int64  // 价格(单位:分,1元=100分)
	AuthorName string // 作者名,可为空
	OwnerID    *uint  // 归属者用户ID,可为空
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Actor 执行操作的用户身份(由认证中间件提供)
type Actor struct {
	ID    uint
	Staff bool // 管理员标志,可以修改任何图书
}

// NewBook 创建新图书(工厂方法)
// price必须>0,由Service层先校验
func NewBook(name string, price int64, authorName string, ownerID *uint) *Book {
	now := time.Now()
	return &Book{
		Name:       name,
		Price:      price,
		AuthorName: authorName,
		OwnerID:    ownerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsOwnedBy 检查图书是否归属于指定用户
// 无归属者的图书对任何用户都返回false
func (b *Book) IsOwnedBy(userID uint) bool {
	return b.OwnerID != nil && *b.OwnerID == userID
}

// CanBeMutatedBy 权限策略:写操作只允许归属者或管理员
// 判定顺序:先归属者,后管理员,否则拒绝
func (b *Book) CanBeMutatedBy(actor Actor) bool {
	if b.IsOwnedBy(actor.ID) {
		return true
	}
	return actor.Staff
}

// Update 全量更新图书可写字段(领域行为)
// OwnerID不在可写集合内:归属关系创建后不再变化
func (b *Book) Update(name string, price int64, authorName string) {
	b.Name = name
	b.Price = price
	b.AuthorName = authorName
	b.UpdatedAt = time.Now()
}
