package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookhub/internal/application/book"
	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/internal/interface/http/dto"
	"github.com/xiebiao/bookhub/internal/interface/http/middleware"
	"github.com/xiebiao/bookhub/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	createBookUseCase *appbook.CreateBookUseCase
	getBookUseCase    *appbook.GetBookUseCase
	listBooksUseCase  *appbook.ListBooksUseCase
	updateBookUseCase *appbook.UpdateBookUseCase
	deleteBookUseCase *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createBookUseCase *appbook.CreateBookUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		createBookUseCase: createBookUseCase,
		getBookUseCase:    getBookUseCase,
		listBooksUseCase:  listBooksUseCase,
		updateBookUseCase: updateBookUseCase,
		deleteBookUseCase: deleteBookUseCase,
	}
}

// List 查询图书列表
// @Summary      图书列表
// @Description  查询图书列表,支持价格精确过滤与书名/作者名子串搜索
// @Tags         图书
// @Produce      json
// @Param        price query string false "价格精确过滤(如25.00)"
// @Param        search query string false "子串搜索,命中书名或作者名"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/books [get]
func (h *BookHandler) List(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40011, "参数错误: "+err.Error())
		return
	}

	var price *int64
	if req.Price != "" {
		cents, err := dto.ParsePrice(req.Price)
		if err != nil {
			response.Error(c, err)
			return
		}
		price = &cents
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Price:  price,
		Search: req.Search,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.BookResponse, len(result))
	for i, b := range result {
		list[i] = toBookResponse(b)
	}
	response.Success(c, list)
}

// Get 查询图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(result))
}

// Create 创建图书
// @Summary      创建图书
// @Description  创建图书,归属者取当前登录用户(匿名时为空)
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40011, "参数错误: "+err.Error())
		return
	}

	// 归属者来自认证上下文,客户端不能在请求体里指定
	result, err := h.createBookUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Name:       req.Name,
		Price:      int64(req.Price),
		AuthorName: req.AuthorName,
		OwnerID:    middleware.GetUserIDPtr(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toBookResponse(result))
}

// Update 全量更新图书
// @Summary      更新图书
// @Description  全量更新图书,只有归属者或管理员可以操作
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "无权限"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40011, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateBookUseCase.Execute(c.Request.Context(), id, actorFrom(c), appbook.UpdateBookRequest{
		Name:       req.Name,
		Price:      int64(req.Price),
		AuthorName: req.AuthorName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(result))
}

// Delete 删除图书
// @Summary      删除图书
// @Description  删除图书,只有归属者或管理员可以操作
// @Tags         图书
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      204 "删除成功,无响应体"
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "无权限"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id, actorFrom(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// parseID 解析路径中的图书ID,非法时写出400响应
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.ErrorWithCode(c, 40010, "无效的图书ID")
		return 0, false
	}
	return uint(id), true
}

// actorFrom 从认证上下文构建操作者身份
func actorFrom(c *gin.Context) book.Actor {
	return book.Actor{
		ID:    middleware.MustGetUserID(c),
		Staff: middleware.GetIsStaff(c),
	}
}

// toBookResponse 应用层DTO → HTTP响应
func toBookResponse(b *appbook.BookDTO) *dto.BookResponse {
	return &dto.BookResponse{
		ID:         b.ID,
		Name:       b.Name,
		Price:      dto.FormatPrice(b.Price),
		AuthorName: b.AuthorName,
		Owner:      b.OwnerID,
		LikesCount: b.LikesCount,
		CreatedAt:  b.CreatedAt,
	}
}
