package dto

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/xiebiao/bookhub/pkg/errors"
)

// PriceCents 金额字段(分)
// 设计说明:
// 1. 对外JSON中价格是保留两位小数的十进制数(如35.00),内部统一用"分"存储
// 2. 同时接受数字和字符串两种JSON写法("35.00"与35.00等价)
// 3. 超过两位小数直接拒绝,避免静默丢失精度
type PriceCents int64

// UnmarshalJSON 解析JSON中的价格
func (p *PriceCents) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)

	cents, err := ParsePrice(s)
	if err != nil {
		return err
	}

	*p = PriceCents(cents)
	return nil
}

// ParsePrice 十进制价格字符串 → 分
// 接受"35"、"35.5"、"35.00"等写法,最多两位小数
func ParsePrice(s string) (int64, error) {
	if s == "" {
		return 0, apperrors.New(apperrors.ErrCodeInvalidPrice, "价格不能为空")
	}

	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}

	if len(fracPart) > 2 {
		return 0, apperrors.New(apperrors.ErrCodeInvalidPrice, "价格最多保留两位小数")
	}
	// 补齐到两位:"5" → "50"
	for len(fracPart) < 2 {
		fracPart += "0"
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, apperrors.New(apperrors.ErrCodeInvalidPrice, "价格格式不正确")
	}

	frac, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil {
		return 0, apperrors.New(apperrors.ErrCodeInvalidPrice, "价格格式不正确")
	}

	if whole < 0 || strings.HasPrefix(intPart, "-") {
		return 0, apperrors.New(apperrors.ErrCodeInvalidPrice, "价格必须大于0")
	}

	return whole*100 + frac, nil
}

// FormatPrice 格式化价格(分 → 保留两位小数的十进制字符串)
// 例如:3500分 → "35.00"
func FormatPrice(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// CreateBookRequest HTTP图书创建/更新请求
// 创建与全量更新共用同一个请求结构
type CreateBookRequest struct {
	Name       string     `json:"name" binding:"required,max=200" example:"Go语言实战"`
	Price      PriceCents `json:"price" binding:"required" example:"35.00"`
	AuthorName string     `json:"author_name" binding:"max=100" example:"威廉·肯尼迪"`
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID         uint   `json:"id" example:"1"`
	Name       string `json:"name" example:"Go语言实战"`
	Price      string `json:"price" example:"35.00"` // 保留两位小数
	AuthorName string `json:"author_name" example:"威廉·肯尼迪"`
	Owner      *uint  `json:"owner" example:"1"` // 归属者用户ID,可为null
	LikesCount int64  `json:"likes_count" example:"3"`
	CreatedAt  string `json:"created_at" example:"2026-01-15 10:30:00"`
}

// ListBooksRequest HTTP图书列表请求
// price与search可叠加(AND组合)
type ListBooksRequest struct {
	Price  string `form:"price" example:"25.00"`      // 价格精确过滤
	Search string `form:"search" example:"Test book"` // 子串搜索(书名或作者名)
}
