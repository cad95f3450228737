package sqlstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BinarniyKot/book-library-api/internal/domain/book"
	"github.com/BinarniyKot/book-library-api/internal/infrastructure/config"
	apperrors "github.com/BinarniyKot/book-library-api/pkg/errors"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:", AutoMigrate: true},
		Books: config.BooksConfig{
			MaxStringLength:       255,
			DefaultPerPage:        15,
			MaxPerPage:            100,
			PriceDecimalPrecision: 2,
			ThrottlePerMinute:     60,
		},
	}
}

// setupRepo 每个测试使用独立的内存SQLite
func setupRepo(t *testing.T) (book.Repository, *gorm.DB) {
	t.Helper()
	cfg := testConfig()
	db, cleanup, err := NewDB(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return NewBookRepository(db, cfg), db
}

func ptr[T any](v T) *T { return &v }

func attrs(title, author, genre string) book.Attributes {
	a := book.NewFactory(uint64(len(title) + len(author))).Make()
	a.Title = ptr(title)
	a.Author = ptr(author)
	a.Genre = ptr(genre)
	return a
}

// seed 按顺序插入,并拉开created_at,保证排序可预期
func seed(t *testing.T, repo book.Repository, db *gorm.DB, items ...book.Attributes) []*book.Book {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var out []*book.Book
	for i, a := range items {
		b, err := repo.Create(context.Background(), a)
		require.NoError(t, err)
		ts := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Model(&BookModel{}).Where("id = ?", b.ID).UpdateColumn("created_at", ts).Error)
		b.CreatedAt = ts
		out = append(out, b)
	}
	return out
}

func ids(items []*book.Book) []uint {
	out := make([]uint, 0, len(items))
	for _, b := range items {
		out = append(out, b.ID)
	}
	return out
}

func TestBookRepository_CreateAndFind(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	a := attrs("Dune", "Frank Herbert", "Science")
	a.PublicationDate = ptr(time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC))
	a.PriceUSD = ptr(decimal.RequireFromString("19.999"))

	created, err := repo.Create(ctx, a)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, "20.00", created.PriceUSD.StringFixed(2))

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", found.Title)
	assert.Equal(t, "1965-08-01", found.PublicationDate.Format(book.DateLayout))
	assert.True(t, found.PriceUSD.Equal(decimal.RequireFromString("20")))
	assert.Equal(t, *a.WordsCount, found.WordsCount)
}

func TestBookRepository_CreateRequiresAllAttributes(t *testing.T) {
	repo, _ := setupRepo(t)

	_, err := repo.Create(context.Background(), book.Attributes{Title: ptr("Dune")})
	assert.Error(t, err)
}

func TestBookRepository_FindByID_NotFound(t *testing.T) {
	repo, _ := setupRepo(t)

	_, err := repo.FindByID(context.Background(), 99999)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestBookRepository_Paginate(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()

	books := seed(t, repo, db,
		attrs("Dune", "Frank Herbert", "Science"),
		attrs("Emma", "Jane Austen", "Romance"),
		attrs("Cosmos", "Carl Sagan", "Science"),
		attrs("SPQR", "Mary Beard", "History"),
	)

	t.Run("默认按创建时间倒序", func(t *testing.T) {
		page, err := repo.Paginate(ctx, book.ListParams{})
		require.NoError(t, err)

		assert.Equal(t, int64(4), page.Total)
		assert.Equal(t, 15, page.PerPage)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, []uint{books[3].ID, books[2].ID, books[1].ID, books[0].ID}, ids(page.Items))
	})

	t.Run("分页", func(t *testing.T) {
		page, err := repo.Paginate(ctx, book.ListParams{PerPage: 3, Page: 2})
		require.NoError(t, err)

		assert.Equal(t, int64(4), page.Total)
		assert.Equal(t, 2, page.LastPage())
		assert.Equal(t, []uint{books[0].ID}, ids(page.Items))
	})

	t.Run("页码超出范围返回空列表", func(t *testing.T) {
		page, err := repo.Paginate(ctx, book.ListParams{PerPage: 3, Page: 9})
		require.NoError(t, err)

		assert.Empty(t, page.Items)
		assert.Equal(t, int64(4), page.Total)
	})

	t.Run("搜索类型不区分大小写", func(t *testing.T) {
		page, err := repo.Paginate(ctx, book.ListParams{Search: "sCiEnCe"})
		require.NoError(t, err)

		assert.Equal(t, []uint{books[2].ID, books[0].ID}, ids(page.Items))
	})

	t.Run("搜索作者子串", func(t *testing.T) {
		page, err := repo.Paginate(ctx, book.ListParams{Search: "austen"})
		require.NoError(t, err)

		assert.Equal(t, []uint{books[1].ID}, ids(page.Items))
	})

	t.Run("搜索标题", func(t *testing.T) {
		page, err := repo.Paginate(ctx, book.ListParams{Search: "spq"})
		require.NoError(t, err)

		assert.Equal(t, []uint{books[3].ID}, ids(page.Items))
	})

	t.Run("通配符按字面匹配", func(t *testing.T) {
		page, err := repo.Paginate(ctx, book.ListParams{Search: "%"})
		require.NoError(t, err)

		assert.Empty(t, page.Items)
		assert.Zero(t, page.Total)
	})

	t.Run("没有匹配", func(t *testing.T) {
		page, err := repo.Paginate(ctx, book.ListParams{Search: "tolkien"})
		require.NoError(t, err)

		assert.Empty(t, page.Items)
		assert.NotNil(t, page.Items)
	})
}

func TestBookRepository_Paginate_UnicodeCaseInsensitive(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()

	books := seed(t, repo, db,
		attrs("Ödön és Éva", "Zoë Ålund", "Roman"),
		attrs("Dune", "Frank Herbert", "Science"),
	)

	for _, search := range []string{"Ödön", "ödön", "ÖDÖN", "Éva", "éva", "ÅLUND", "ålund", "Zoë", "zoë", "ZOË"} {
		t.Run(search, func(t *testing.T) {
			page, err := repo.Paginate(ctx, book.ListParams{Search: search})
			require.NoError(t, err)

			assert.Equal(t, int64(1), page.Total)
			assert.Equal(t, []uint{books[0].ID}, ids(page.Items))
		})
	}
}

func TestBookRepository_Paginate_TiesOrderedByID(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()

	var created []*book.Book
	for i := 0; i < 3; i++ {
		b, err := repo.Create(ctx, attrs(fmt.Sprintf("Book %d", i), "Author", "Fiction"))
		require.NoError(t, err)
		created = append(created, b)
	}
	same := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Model(&BookModel{}).Where("1 = 1").UpdateColumn("created_at", same).Error)

	page, err := repo.Paginate(ctx, book.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, []uint{created[2].ID, created[1].ID, created[0].ID}, ids(page.Items))
}

func TestBookRepository_Update(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	b, err := repo.Create(ctx, attrs("Dune", "Frank Herbert", "Science"))
	require.NoError(t, err)
	original := *b

	t.Run("部分更新只改变提供的字段", func(t *testing.T) {
		updated, err := repo.Update(ctx, b, book.Attributes{
			Title:    ptr("Dune Messiah"),
			PriceUSD: ptr(decimal.RequireFromString("12.5")),
		})
		require.NoError(t, err)
		assert.True(t, updated)

		assert.Equal(t, "Dune Messiah", b.Title)
		assert.Equal(t, "12.50", b.PriceUSD.StringFixed(2))
		assert.Equal(t, original.Author, b.Author)
		assert.Equal(t, original.WordsCount, b.WordsCount)

		reloaded, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune Messiah", reloaded.Title)
		assert.InDelta(t, 12.5, reloaded.PriceUSD.InexactFloat64(), 0.01)
		assert.Equal(t, original.Genre, reloaded.Genre)
	})

	t.Run("值未变化返回false", func(t *testing.T) {
		updated, err := repo.Update(ctx, b, book.Attributes{Title: ptr("Dune Messiah")})
		require.NoError(t, err)
		assert.False(t, updated)
	})

	t.Run("空属性返回false", func(t *testing.T) {
		updated, err := repo.Update(ctx, b, book.Attributes{})
		require.NoError(t, err)
		assert.False(t, updated)
	})
}

func TestBookRepository_Delete(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	b, err := repo.Create(ctx, attrs("Dune", "Frank Herbert", "Science"))
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, b)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.FindByID(ctx, b.ID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	// 再次删除不报错,只是没有删除任何行
	deleted, err = repo.Delete(ctx, b)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMigrate_PriceScaleFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Books.PriceDecimalPrecision = 3
	db, cleanup, err := NewDB(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(cleanup)

	var ddl string
	require.NoError(t, db.Raw("SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'books'").Scan(&ddl).Error)
	assert.Contains(t, strings.ToLower(ddl), "decimal(10,3)")
}

func TestBookRepository_DatabaseError(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()

	b, err := repo.Create(ctx, attrs("Dune", "Frank Herbert", "Science"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	assertDatabaseError := func(t *testing.T, err error) {
		t.Helper()
		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		assert.Equal(t, apperrors.ErrCodeDatabaseError, appErr.Code)
		assert.Equal(t, 500, appErr.HTTPStatus())
	}

	t.Run("列表", func(t *testing.T) {
		_, err := repo.Paginate(ctx, book.ListParams{})
		assertDatabaseError(t, err)
	})

	t.Run("查询", func(t *testing.T) {
		_, err := repo.FindByID(ctx, b.ID)
		assertDatabaseError(t, err)
		assert.NotErrorIs(t, err, book.ErrBookNotFound)
	})

	t.Run("创建", func(t *testing.T) {
		_, err := repo.Create(ctx, attrs("Emma", "Jane Austen", "Romance"))
		assertDatabaseError(t, err)
	})

	t.Run("删除", func(t *testing.T) {
		_, err := repo.Delete(ctx, b)
		assertDatabaseError(t, err)
	})
}

func TestNewDB_SQLLogLevels(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.InfoLevel)

	db, cleanup, err := NewDB(testConfig(), log)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	t.Run("错误SQL记为error", func(t *testing.T) {
		buf.Reset()
		var n int
		err := db.Raw("SELECT count(*) FROM missing_table").Scan(&n).Error
		require.Error(t, err)

		out := buf.String()
		assert.Contains(t, out, `"level":"error"`)
		assert.Contains(t, out, `"component":"gorm"`)
		assert.Contains(t, out, "missing_table")
	})

	t.Run("未找到记录不记日志", func(t *testing.T) {
		buf.Reset()
		var m BookModel
		err := db.First(&m, 99999).Error
		require.Error(t, err)

		assert.Empty(t, buf.String())
	})

	t.Run("慢查询记为warn", func(t *testing.T) {
		buf.Reset()
		l := newGormLogger(log, logger.Warn, time.Millisecond)
		l.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) {
			return "SELECT 1", 1
		}, nil)

		out := buf.String()
		assert.Contains(t, out, `"level":"warn"`)
		assert.Contains(t, out, `"sql":"SELECT 1"`)
	})

	t.Run("普通SQL在info级别以下不输出", func(t *testing.T) {
		buf.Reset()
		var n int
		require.NoError(t, db.Raw("SELECT count(*) FROM books").Scan(&n).Error)

		assert.Empty(t, buf.String())
	})
}
