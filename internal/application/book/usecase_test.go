package book

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/BinarniyKot/book-library-api/internal/domain/book"
	"github.com/BinarniyKot/book-library-api/internal/domain/book/mocks"
	apperrors "github.com/BinarniyKot/book-library-api/pkg/errors"
)

func newRepo(t *testing.T) *mocks.MockRepository {
	ctrl := gomock.NewController(t)
	return mocks.NewMockRepository(ctrl)
}

func TestListBooksUseCase_PassesParams(t *testing.T) {
	repo := newRepo(t)
	want := &book.Page{Items: []*book.Book{{ID: 1}}, Total: 1, Page: 2, PerPage: 5}

	repo.EXPECT().
		Paginate(gomock.Any(), book.ListParams{Search: "dune", PerPage: 5, Page: 2}).
		Return(want, nil)

	page, err := NewListBooksUseCase(repo).Execute(context.Background(), ListBooksRequest{Search: "dune", PerPage: 5, Page: 2})
	require.NoError(t, err)
	assert.Same(t, want, page)
}

func TestListBooksUseCase_StoreError(t *testing.T) {
	repo := newRepo(t)
	storeErr := apperrors.Wrap(errors.New("db down"), "查询图书列表失败")
	repo.EXPECT().Paginate(gomock.Any(), gomock.Any()).Return(nil, storeErr)

	_, err := NewListBooksUseCase(repo).Execute(context.Background(), ListBooksRequest{})
	assert.ErrorIs(t, err, storeErr)
}

func TestCreateBookUseCase(t *testing.T) {
	repo := newRepo(t)
	attrs := book.NewFactory(1).Make()
	repo.EXPECT().Create(gomock.Any(), attrs).Return(&book.Book{ID: 10, Title: *attrs.Title}, nil)

	b, err := NewCreateBookUseCase(repo).Execute(context.Background(), attrs)
	require.NoError(t, err)
	assert.Equal(t, uint(10), b.ID)
}

func TestGetBookUseCase_NotFound(t *testing.T) {
	repo := newRepo(t)
	repo.EXPECT().FindByID(gomock.Any(), uint(99999)).Return(nil, book.ErrBookNotFound)

	_, err := NewGetBookUseCase(repo).Execute(context.Background(), 99999)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestUpdateBookUseCase(t *testing.T) {
	title := "Dune Messiah"
	attrs := book.Attributes{Title: &title}

	t.Run("有变化", func(t *testing.T) {
		repo := newRepo(t)
		b := &book.Book{ID: 1, Title: "Dune"}
		repo.EXPECT().Update(gomock.Any(), b, attrs).DoAndReturn(
			func(_ context.Context, b *book.Book, a book.Attributes) (bool, error) {
				a.ApplyTo(b)
				return true, nil
			})

		changed, err := NewUpdateBookUseCase(repo).Execute(context.Background(), b, attrs)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "Dune Messiah", b.Title)
	})

	t.Run("无变化", func(t *testing.T) {
		repo := newRepo(t)
		b := &book.Book{ID: 1, Title: title}
		repo.EXPECT().Update(gomock.Any(), b, attrs).Return(false, nil)

		changed, err := NewUpdateBookUseCase(repo).Execute(context.Background(), b, attrs)
		require.NoError(t, err)
		assert.False(t, changed)
	})
}

func TestDeleteBookUseCase(t *testing.T) {
	t.Run("删除成功", func(t *testing.T) {
		repo := newRepo(t)
		b := &book.Book{ID: 3}
		repo.EXPECT().Delete(gomock.Any(), b).Return(true, nil)

		assert.NoError(t, NewDeleteBookUseCase(repo).Execute(context.Background(), b))
	})

	t.Run("已被删除不算错误", func(t *testing.T) {
		repo := newRepo(t)
		b := &book.Book{ID: 3}
		repo.EXPECT().Delete(gomock.Any(), b).Return(false, nil)

		assert.NoError(t, NewDeleteBookUseCase(repo).Execute(context.Background(), b))
	})

	t.Run("存储错误", func(t *testing.T) {
		repo := newRepo(t)
		b := &book.Book{ID: 3}
		repo.EXPECT().Delete(gomock.Any(), b).Return(false, errors.New("locked"))

		assert.Error(t, NewDeleteBookUseCase(repo).Execute(context.Background(), b))
	})
}
