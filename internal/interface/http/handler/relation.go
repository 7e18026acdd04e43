package handler

import (
	"github.com/gin-gonic/gin"

	apprelation "github.com/xiebiao/bookhub/internal/application/relation"
	"github.com/xiebiao/bookhub/internal/interface/http/dto"
	"github.com/xiebiao/bookhub/internal/interface/http/middleware"
	"github.com/xiebiao/bookhub/pkg/response"
)

// RelationHandler 用户-图书关系HTTP处理器
type RelationHandler struct {
	patchRelationUseCase *apprelation.PatchRelationUseCase
}

// NewRelationHandler 创建关系处理器
func NewRelationHandler(patchRelationUseCase *apprelation.PatchRelationUseCase) *RelationHandler {
	return &RelationHandler{patchRelationUseCase: patchRelationUseCase}
}

// Patch 部分更新用户对图书的关系(点赞/收藏/评分)
// @Summary      更新图书关系
// @Description  更新当前用户对图书的点赞/收藏/评分,首次操作自动创建关系
// @Tags         图书关系
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.PatchRelationRequest true "要修改的字段"
// @Success      200 {object} response.Response{data=dto.RelationResponse}
// @Failure      400 {object} response.Response "评分超出区间"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id}/relation [patch]
func (h *RelationHandler) Patch(c *gin.Context) {
	bookID, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.PatchRelationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40011, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.patchRelationUseCase.Execute(c.Request.Context(), userID, bookID, apprelation.PatchRelationRequest{
		Like:        req.Like,
		InBookmarks: req.InBookmarks,
		Rate:        req.Rate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.RelationResponse{
		ID:          result.ID,
		UserID:      result.UserID,
		BookID:      result.BookID,
		Like:        result.Like,
		InBookmarks: result.InBookmarks,
		Rate:        result.Rate,
	})
}
