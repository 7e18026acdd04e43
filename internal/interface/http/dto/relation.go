package dto

// PatchRelationRequest HTTP用户-图书关系更新请求
// 三个字段均可选,未出现的字段保持原值
// 评分区间校验在领域层完成,非法评分时整个更新不生效
type PatchRelationRequest struct {
	Like        *bool `json:"like" example:"true"`
	InBookmarks *bool `json:"in_bookmarks" example:"false"`
	Rate        *int  `json:"rate" example:"5"`
}

// RelationResponse HTTP关系响应
type RelationResponse struct {
	ID          uint  `json:"id" example:"1"`
	UserID      uint  `json:"user" example:"1"`
	BookID      uint  `json:"book" example:"1"`
	Like        bool  `json:"like" example:"true"`
	InBookmarks bool  `json:"in_bookmarks" example:"false"`
	Rate        *int  `json:"rate" example:"5"` // 可为null(未评分)
}
