package relation

import (
	"time"
)

// 评分取值范围
const (
	MinRate = 1
	MaxRate = 5
)

// UserBookRelation 用户-图书关系实体
// 设计说明:
// 1. 每个(用户,图书)组合最多一行,由数据库联合唯一索引保证
// 2. 关系行惰性创建:用户首次PATCH某本图书时通过get-or-create产生
// 3. Rate可为空:空表示未评分,与"评0分"语义不同
type UserBookRelation struct {
	ID          uint
	UserID      uint
	BookID      uint
	Like        bool // 点赞
	InBookmarks bool // 收藏
	Rate        *int // 评分1~5,nil表示未评分
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Patch 关系的部分更新
// 三个字段均可选,nil表示该字段不修改
type Patch struct {
	Like        *bool
	InBookmarks *bool
	Rate        *int
}

// Apply 将部分更新应用到关系行
// 业务规则:评分必须在[1,5]区间内,非法评分整个更新都不生效
func (r *UserBookRelation) Apply(p Patch) error {
	if p.Rate != nil && (*p.Rate < MinRate || *p.Rate > MaxRate) {
		return ErrInvalidRate
	}

	if p.Like != nil {
		r.Like = *p.Like
	}
	if p.InBookmarks != nil {
		r.InBookmarks = *p.InBookmarks
	}
	if p.Rate != nil {
		r.Rate = p.Rate
	}
	r.UpdatedAt = time.Now()
	return nil
}
