package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookhub/internal/domain/relation"
	apperrors "github.com/xiebiao/bookhub/pkg/errors"
)

// relationRepository 用户-图书关系仓储实现(MySQL)
type relationRepository struct {
	db *gorm.DB
}

// NewRelationRepository 创建关系仓储
func NewRelationRepository(db *gorm.DB) relation.Repository {
	return &relationRepository{db: db}
}

// GetOrCreate 获取关系行,不存在则创建零值行
// 设计说明:
// 1. FirstOrCreate以(user_id, book_id)为条件,并发插入时由联合唯一索引兜底
// 2. 唯一索引冲突说明另一个请求刚创建了该行,重查一次即可
func (r *relationRepository) GetOrCreate(ctx context.Context, userID, bookID uint) (*relation.UserBookRelation, error) {
	var model UserBookRelationModel
	err := r.db.WithContext(ctx).
		Where(&UserBookRelationModel{UserID: userID, BookID: bookID}).
		FirstOrCreate(&model).Error

	if err != nil {
		if isDuplicateError(err) {
			err = r.db.WithContext(ctx).
				Where("user_id = ? AND book_id = ?", userID, bookID).
				First(&model).Error
		}
		if err != nil {
			return nil, apperrors.Wrap(err, "查询用户图书关系失败")
		}
	}

	return toRelationEntity(&model), nil
}

// Update 更新关系行
func (r *relationRepository) Update(ctx context.Context, rel *relation.UserBookRelation) error {
	model := &UserBookRelationModel{
		ID:          rel.ID,
		UserID:      rel.UserID,
		BookID:      rel.BookID,
		Like:        rel.Like,
		InBookmarks: rel.InBookmarks,
		Rate:        rel.Rate,
		CreatedAt:   rel.CreatedAt,
	}

	// Select强制写回指定列,false/NULL也能落库(GORM的Updates默认跳过零值字段)
	err := r.db.WithContext(ctx).Model(model).
		Select("like", "in_bookmarks", "rate").
		Updates(model).Error
	if err != nil {
		return apperrors.Wrap(err, "更新用户图书关系失败")
	}

	return nil
}

// LikesCount 统计一批图书的点赞数
// SELECT book_id, COUNT(*) FROM user_book_relations WHERE `like` = true AND book_id IN (...) GROUP BY book_id
func (r *relationRepository) LikesCount(ctx context.Context, bookIDs []uint) (map[uint]int64, error) {
	type row struct {
		BookID uint
		Count  int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&UserBookRelationModel{}).
		Select("book_id, COUNT(*) AS count").
		Where("`like` = ? AND book_id IN ?", true, bookIDs).
		Group("book_id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计点赞数失败")
	}

	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.BookID] = r.Count
	}
	return counts, nil
}

// toRelationEntity GORM模型 → 领域实体
func toRelationEntity(model *UserBookRelationModel) *relation.UserBookRelation {
	return &relation.UserBookRelation{
		ID:          model.ID,
		UserID:      model.UserID,
		BookID:      model.BookID,
		Like:        model.Like,
		InBookmarks: model.InBookmarks,
		Rate:        model.Rate,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
