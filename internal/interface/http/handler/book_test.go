package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbook "github.com/xiebiao/bookhub/internal/application/book"
	apprelation "github.com/xiebiao/bookhub/internal/application/relation"
	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/internal/domain/relation"
	"github.com/xiebiao/bookhub/internal/interface/http/dto"
	"github.com/xiebiao/bookhub/internal/interface/http/middleware"
	"github.com/xiebiao/bookhub/pkg/jwt"
	"github.com/xiebiao/bookhub/pkg/metrics"
	"github.com/xiebiao/bookhub/pkg/response"
)

// =========================================
// 测试环境:内存仓储 + 真实路由/中间件
// =========================================

type fakeBookRepo struct {
	nextID uint
	books  map[uint]*book.Book
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{nextID: 1, books: make(map[uint]*book.Book)}
}

func (r *fakeBookRepo) Create(_ context.Context, b *book.Book) error {
	clone := *b
	clone.ID = r.nextID
	r.nextID++
	r.books[clone.ID] = &clone
	b.ID = clone.ID
	return nil
}

func (r *fakeBookRepo) FindByID(_ context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeBookRepo) Update(_ context.Context, b *book.Book) error {
	if _, ok := r.books[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	clone := *b
	r.books[b.ID] = &clone
	return nil
}

func (r *fakeBookRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) List(_ context.Context, params book.ListParams) ([]*book.Book, error) {
	ids := make([]uint, 0, len(r.books))
	for id := range r.books {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []*book.Book
	for _, id := range ids {
		b := r.books[id]
		if params.Price != nil && b.Price != *params.Price {
			continue
		}
		if params.Search != "" {
			s := strings.ToLower(params.Search)
			if !strings.Contains(strings.ToLower(b.Name), s) &&
				!strings.Contains(strings.ToLower(b.AuthorName), s) {
				continue
			}
		}
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

type relKey struct {
	userID uint
	bookID uint
}

type fakeRelationRepo struct {
	nextID uint
	rels   map[relKey]*relation.UserBookRelation
}

func newFakeRelationRepo() *fakeRelationRepo {
	return &fakeRelationRepo{nextID: 1, rels: make(map[relKey]*relation.UserBookRelation)}
}

func (r *fakeRelationRepo) GetOrCreate(_ context.Context, userID, bookID uint) (*relation.UserBookRelation, error) {
	key := relKey{userID: userID, bookID: bookID}
	if rel, ok := r.rels[key]; ok {
		clone := *rel
		return &clone, nil
	}
	rel := &relation.UserBookRelation{ID: r.nextID, UserID: userID, BookID: bookID}
	r.nextID++
	r.rels[key] = rel
	clone := *rel
	return &clone, nil
}

func (r *fakeRelationRepo) Update(_ context.Context, rel *relation.UserBookRelation) error {
	clone := *rel
	r.rels[relKey{userID: rel.UserID, bookID: rel.BookID}] = &clone
	return nil
}

func (r *fakeRelationRepo) LikesCount(_ context.Context, bookIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64)
	for _, rel := range r.rels {
		if !rel.Like {
			continue
		}
		for _, id := range bookIDs {
			if rel.BookID == id {
				counts[id]++
				break
			}
		}
	}
	return counts, nil
}

// noopBlacklist 测试用空黑名单
type noopBlacklist struct{}

func (noopBlacklist) IsInBlacklist(context.Context, string) (bool, error) {
	return false, nil
}

// testEnv 测试环境:真实的路由、中间件与JWT鉴权,仓储为内存实现
type testEnv struct {
	router       *gin.Engine
	bookRepo     *fakeBookRepo
	relationRepo *fakeRelationRepo
	jwtManager   *jwt.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	metrics.InitMetrics()

	bookRepo := newFakeBookRepo()
	relationRepo := newFakeRelationRepo()

	bookService := book.NewService(bookRepo)
	relationService := relation.NewService(relationRepo)

	bookHandler := NewBookHandler(
		appbook.NewCreateBookUseCase(bookService),
		appbook.NewGetBookUseCase(bookService, relationService),
		appbook.NewListBooksUseCase(bookService, relationService),
		appbook.NewUpdateBookUseCase(bookService, relationService),
		appbook.NewDeleteBookUseCase(bookService),
	)
	relationHandler := NewRelationHandler(
		apprelation.NewPatchRelationUseCase(bookService, relationService),
	)

	jwtManager := jwt.NewManager("test-secret", time.Hour, 24*time.Hour)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, noopBlacklist{})

	r := gin.New()
	books := r.Group("/api/v1/books")
	{
		books.GET("", bookHandler.List)
		books.GET("/:id", bookHandler.Get)
		books.POST("", authMiddleware.RequireAuth(), bookHandler.Create)
		books.PUT("/:id", authMiddleware.RequireAuth(), bookHandler.Update)
		books.DELETE("/:id", authMiddleware.RequireAuth(), bookHandler.Delete)
		books.PATCH("/:id/relation", authMiddleware.RequireAuth(), relationHandler.Patch)
	}

	return &testEnv{
		router:       r,
		bookRepo:     bookRepo,
		relationRepo: relationRepo,
		jwtManager:   jwtManager,
	}
}

// tokenFor 为指定用户签发Access Token
func (e *testEnv) tokenFor(t *testing.T, userID uint, isStaff bool) string {
	t.Helper()
	pair, err := e.jwtManager.GenerateToken(userID, fmt.Sprintf("user%d@example.com", userID), isStaff)
	require.NoError(t, err)
	return pair.AccessToken
}

// do 发起HTTP请求,token为空时匿名访问
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// seedBooks 写入三本书fixture:
// 1. Test book 1 / 35.00 / Author 1 / 归属用户1
// 2. Test book 2 / 25.00 / Author 2 / 无归属
// 3. Test book 2 / 25.00 / Author 3, Test book 1 / 无归属
func (e *testEnv) seedBooks(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	owner := uint(1)

	require.NoError(t, e.bookRepo.Create(ctx, &book.Book{Name: "Test book 1", Price: 3500, AuthorName: "Author 1", OwnerID: &owner}))
	require.NoError(t, e.bookRepo.Create(ctx, &book.Book{Name: "Test book 2", Price: 2500, AuthorName: "Author 2"}))
	require.NoError(t, e.bookRepo.Create(ctx, &book.Book{Name: "Test book 2", Price: 2500, AuthorName: "Author 3, Test book 1"}))
}

// decodeBooks 解析列表响应中的data字段
func decodeBooks(t *testing.T, w *httptest.ResponseRecorder) []dto.BookResponse {
	t.Helper()
	var resp struct {
		Code int                `json:"code"`
		Data []dto.BookResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

// decodeBook 解析详情响应中的data字段
func decodeBook(t *testing.T, w *httptest.ResponseRecorder) dto.BookResponse {
	t.Helper()
	var resp struct {
		Code int              `json:"code"`
		Data dto.BookResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

// =========================================
// 列表与搜索
// =========================================

func TestListBooks(t *testing.T) {
	env := newTestEnv(t)
	env.seedBooks(t)

	t.Run("无条件返回全部并按插入顺序", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/books", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		books := decodeBooks(t, w)
		require.Len(t, books, 3)
		assert.Equal(t, "Test book 1", books[0].Name)
		assert.Equal(t, "35.00", books[0].Price)
		require.NotNil(t, books[0].Owner)
		assert.Equal(t, uint(1), *books[0].Owner)
		assert.Nil(t, books[1].Owner)
	})

	t.Run("价格精确过滤", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/books?price=25.00", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		books := decodeBooks(t, w)
		require.Len(t, books, 2)
		assert.Equal(t, uint(2), books[0].ID)
		assert.Equal(t, uint(3), books[1].ID)
		assert.Equal(t, "25.00", books[0].Price)
	})

	t.Run("搜索命中书名或作者名", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/books?search=Test+book+1", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		books := decodeBooks(t, w)
		require.Len(t, books, 2)
		assert.Equal(t, uint(1), books[0].ID, "书名命中")
		assert.Equal(t, uint(3), books[1].ID, "作者名命中")
	})

	t.Run("价格与搜索组合为AND", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/books?price=25.00&search=Test+book+1", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		books := decodeBooks(t, w)
		require.Len(t, books, 1)
		assert.Equal(t, uint(3), books[0].ID)
	})

	t.Run("非法价格参数返回400", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/books?price=abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetBook(t *testing.T) {
	env := newTestEnv(t)
	env.seedBooks(t)

	t.Run("正常查询", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/books/1", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		b := decodeBook(t, w)
		assert.Equal(t, "Test book 1", b.Name)
		assert.Equal(t, "35.00", b.Price)
		assert.Equal(t, "Author 1", b.AuthorName)
	})

	t.Run("图书不存在返回404", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/books/999", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("非法ID返回400", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/books/abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// =========================================
// 创建
// =========================================

func TestCreateBook(t *testing.T) {
	env := newTestEnv(t)

	t.Run("登录用户创建成功且归属自己", func(t *testing.T) {
		token := env.tokenFor(t, 1, false)
		w := env.do(t, http.MethodPost, "/api/v1/books", token, gin.H{
			"name":        "Test book 1",
			"price":       "35.00",
			"author_name": "Author 1",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		b := decodeBook(t, w)
		assert.Equal(t, "35.00", b.Price)
		require.NotNil(t, b.Owner)
		assert.Equal(t, uint(1), *b.Owner)
		assert.Equal(t, int64(0), b.LikesCount)
	})

	t.Run("价格数字写法等价", func(t *testing.T) {
		token := env.tokenFor(t, 1, false)
		w := env.do(t, http.MethodPost, "/api/v1/books", token, gin.H{
			"name":  "Test book 2",
			"price": 25.00,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "25.00", decodeBook(t, w).Price)
	})

	t.Run("未登录返回401", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/books", "", gin.H{
			"name":  "Test book",
			"price": "35.00",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("缺少书名返回400", func(t *testing.T) {
		token := env.tokenFor(t, 1, false)
		w := env.do(t, http.MethodPost, "/api/v1/books", token, gin.H{
			"price": "35.00",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("三位小数价格返回400", func(t *testing.T) {
		token := env.tokenFor(t, 1, false)
		w := env.do(t, http.MethodPost, "/api/v1/books", token, gin.H{
			"name":  "Test book",
			"price": "35.005",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// =========================================
// 更新与权限
// =========================================

func TestUpdateBook(t *testing.T) {
	env := newTestEnv(t)
	env.seedBooks(t)

	t.Run("归属者更新成功", func(t *testing.T) {
		token := env.tokenFor(t, 1, false)
		w := env.do(t, http.MethodPut, "/api/v1/books/1", token, gin.H{
			"name":        "Test book 1",
			"price":       "45.00",
			"author_name": "Author 1",
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "45.00", decodeBook(t, w).Price)
	})

	t.Run("非归属者返回403且数据不变", func(t *testing.T) {
		token := env.tokenFor(t, 2, false)
		w := env.do(t, http.MethodPut, "/api/v1/books/1", token, gin.H{
			"name":        "Test book 1",
			"price":       "99.00",
			"author_name": "Author 1",
		})
		require.Equal(t, http.StatusForbidden, w.Code)

		var resp response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "You do not have permission to perform this action.", resp.Message)

		// 数据未被修改
		stored, err := env.bookRepo.FindByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(4500), stored.Price)
	})

	t.Run("管理员可以更新任何图书", func(t *testing.T) {
		token := env.tokenFor(t, 99, true)
		w := env.do(t, http.MethodPut, "/api/v1/books/1", token, gin.H{
			"name":        "Test book 1",
			"price":       "55.00",
			"author_name": "Author 1",
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "55.00", decodeBook(t, w).Price)
	})

	t.Run("未登录返回401", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/v1/books/1", "", gin.H{
			"name":  "Test book 1",
			"price": "10.00",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("图书不存在返回404", func(t *testing.T) {
		token := env.tokenFor(t, 1, false)
		w := env.do(t, http.MethodPut, "/api/v1/books/999", token, gin.H{
			"name":  "x",
			"price": "10.00",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// =========================================
// 删除与权限
// =========================================

func TestDeleteBook(t *testing.T) {
	env := newTestEnv(t)
	env.seedBooks(t)

	t.Run("非归属者返回403", func(t *testing.T) {
		token := env.tokenFor(t, 2, false)
		w := env.do(t, http.MethodDelete, "/api/v1/books/1", token, nil)
		require.Equal(t, http.StatusForbidden, w.Code)

		var resp response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "You do not have permission to perform this action.", resp.Message)
	})

	t.Run("归属者删除返回204且无响应体", func(t *testing.T) {
		token := env.tokenFor(t, 1, false)
		w := env.do(t, http.MethodDelete, "/api/v1/books/1", token, nil)
		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.Bytes())

		// 删除后查询404
		w = env.do(t, http.MethodGet, "/api/v1/books/1", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("管理员删除无归属图书", func(t *testing.T) {
		token := env.tokenFor(t, 99, true)
		w := env.do(t, http.MethodDelete, "/api/v1/books/2", token, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("重复删除返回404", func(t *testing.T) {
		token := env.tokenFor(t, 99, true)
		w := env.do(t, http.MethodDelete, "/api/v1/books/2", token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
