package book

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo 内存仓储,用于领域服务单元测试
type memRepo struct {
	nextID uint
	books  map[uint]*Book
}

func newMemRepo() *memRepo {
	return &memRepo{nextID: 1, books: make(map[uint]*Book)}
}

func (r *memRepo) Create(_ context.Context, b *Book) error {
	clone := *b
	clone.ID = r.nextID
	r.nextID++
	r.books[clone.ID] = &clone
	b.ID = clone.ID
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id uint) (*Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *memRepo) Update(_ context.Context, b *Book) error {
	if _, ok := r.books[b.ID]; !ok {
		return ErrBookNotFound
	}
	clone := *b
	r.books[b.ID] = &clone
	return nil
}

func (r *memRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.books[id]; !ok {
		return ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *memRepo) List(_ context.Context, params ListParams) ([]*Book, error) {
	ids := make([]uint, 0, len(r.books))
	for id := range r.books {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []*Book
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

func uintPtr(v uint) *uint { return &v }

func TestCreateValidation(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	t.Run("正常创建", func(t *testing.T) {
		b, err := svc.Create(ctx, "Test book 1", 3500, "Author 1", uintPtr(1))
		require.NoError(t, err)
		assert.NotZero(t, b.ID)
		assert.Equal(t, int64(3500), b.Price)
		require.NotNil(t, b.OwnerID)
		assert.Equal(t, uint(1), *b.OwnerID)
	})

	t.Run("匿名创建归属者为空", func(t *testing.T) {
		b, err := svc.Create(ctx, "Test book 2", 2500, "Author 2", nil)
		require.NoError(t, err)
		assert.Nil(t, b.OwnerID)
	})

	t.Run("书名为空被拒绝", func(t *testing.T) {
		_, err := svc.Create(ctx, "", 3500, "Author 1", nil)
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("价格非法被拒绝", func(t *testing.T) {
		_, err := svc.Create(ctx, "Test book", 0, "", nil)
		assert.ErrorIs(t, err, ErrInvalidPrice)
		_, err = svc.Create(ctx, "Test book", -100, "", nil)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})
}

func TestUpdatePermission(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	owned, err := svc.Create(ctx, "Test book 1", 3500, "Author 1", uintPtr(1))
	require.NoError(t, err)

	t.Run("归属者可以修改", func(t *testing.T) {
		b, err := svc.Update(ctx, owned.ID, Actor{ID: 1}, "Test book 1", 4500, "Author 1")
		require.NoError(t, err)
		assert.Equal(t, int64(4500), b.Price)
	})

	t.Run("其他用户被拒绝且数据不变", func(t *testing.T) {
		_, err := svc.Update(ctx, owned.ID, Actor{ID: 2}, "Test book 1", 9900, "Author 1")
		assert.ErrorIs(t, err, ErrPermissionDenied)

		got, err := repo.FindByID(ctx, owned.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(4500), got.Price, "被拒绝的更新不应该落库")
	})

	t.Run("管理员可以修改任何图书", func(t *testing.T) {
		b, err := svc.Update(ctx, owned.ID, Actor{ID: 99, Staff: true}, "Test book 1", 5500, "Author 1")
		require.NoError(t, err)
		assert.Equal(t, int64(5500), b.Price)
	})

	t.Run("归属关系不被更新改变", func(t *testing.T) {
		got, err := repo.FindByID(ctx, owned.ID)
		require.NoError(t, err)
		require.NotNil(t, got.OwnerID)
		assert.Equal(t, uint(1), *got.OwnerID)
	})

	t.Run("无归属图书普通用户也不能修改", func(t *testing.T) {
		unowned, err := svc.Create(ctx, "Test book 2", 2500, "Author 2", nil)
		require.NoError(t, err)

		_, err = svc.Update(ctx, unowned.ID, Actor{ID: 2}, "Test book 2", 2600, "Author 2")
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("图书不存在返回404错误", func(t *testing.T) {
		_, err := svc.Update(ctx, 9999, Actor{ID: 1}, "x", 100, "")
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}

func TestDeletePermission(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	b, err := svc.Create(ctx, "Test book 1", 3500, "Author 1", uintPtr(1))
	require.NoError(t, err)

	t.Run("非归属者删除被拒绝", func(t *testing.T) {
		err := svc.Delete(ctx, b.ID, Actor{ID: 2})
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("归属者删除成功", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, b.ID, Actor{ID: 1}))
	})

	t.Run("再次删除返回404错误", func(t *testing.T) {
		err := svc.Delete(ctx, b.ID, Actor{ID: 1})
		assert.ErrorIs(t, err, ErrBookNotFound)
	})

	t.Run("管理员删除他人图书", func(t *testing.T) {
		b2, err := svc.Create(ctx, "Test book 2", 2500, "Author 2", uintPtr(1))
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, b2.ID, Actor{ID: 99, Staff: true}))
	})
}

func TestListFilterAndSearch(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	// 与API层测试共用的三本书fixture
	_, err := svc.Create(ctx, "Test book 1", 3500, "Author 1", uintPtr(1))
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Test book 2", 2500, "Author 2", nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Test book 2", 2500, "Author 3, Test book 1", nil)
	require.NoError(t, err)

	t.Run("无条件返回全部并按插入顺序", func(t *testing.T) {
		books, err := svc.List(ctx, ListParams{})
		require.NoError(t, err)
		require.Len(t, books, 3)
		assert.Equal(t, uint(1), books[0].ID)
		assert.Equal(t, uint(3), books[2].ID)
	})

	t.Run("价格精确过滤", func(t *testing.T) {
		price := int64(2500)
		books, err := svc.List(ctx, ListParams{Price: &price})
		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, uint(2), books[0].ID)
		assert.Equal(t, uint(3), books[1].ID)
	})

	t.Run("搜索命中书名或作者名", func(t *testing.T) {
		books, err := svc.List(ctx, ListParams{Search: "Test book 1"})
		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, uint(1), books[0].ID, "书名命中")
		assert.Equal(t, uint(3), books[1].ID, "作者名命中")
	})

	t.Run("价格与搜索组合为AND", func(t *testing.T) {
		price := int64(2500)
		books, err := svc.List(ctx, ListParams{Price: &price, Search: "Test book 1"})
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, uint(3), books[0].ID)
	})
}
