package sqlstore

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/BinarniyKot/book-library-api/internal/domain/book"
	"github.com/BinarniyKot/book-library-api/internal/infrastructure/config"
	apperrors "github.com/BinarniyKot/book-library-api/pkg/errors"
)

// likeEscaper 转义LIKE通配符,搜索词中的%和_按字面匹配
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// bookRepository 图书仓储实现(GORM,MySQL/SQLite通用)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 数据库错误统一包装为内部错误,不向上暴露驱动细节
type bookRepository struct {
	db             *gorm.DB
	defaultPerPage int
	pricePlaces    int
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB, cfg *config.Config) book.Repository {
	return &bookRepository{
		db:             db,
		defaultPerPage: cfg.Books.DefaultPerPage,
		pricePlaces:    cfg.Books.PriceDecimalPrecision,
	}
}

// Paginate 分页查询图书列表
func (r *bookRepository) Paginate(ctx context.Context, params book.ListParams) (*book.Page, error) {
	perPage := params.PerPage
	if perPage <= 0 {
		perPage = r.defaultPerPage
	}
	page := params.Page
	if page < 1 {
		page = 1
	}

	query := r.db.WithContext(ctx).Model(&BookModel{})

	// 关键词搜索(标题、作者、类型),不区分大小写
	if search := strings.TrimSpace(params.Search); search != "" {
		// 两侧都由数据库的LOWER转换,保证大小写规则一致
		pattern := "%" + likeEscaper.Replace(search) + "%"
		query = query.Where(
			"LOWER(title) LIKE LOWER(?) ESCAPE '!' OR LOWER(author) LIKE LOWER(?) ESCAPE '!' OR LOWER(genre) LIKE LOWER(?) ESCAPE '!'",
			pattern, pattern, pattern,
		)
	}
	// 新会话:Count和Find共用同一组条件,互不影响
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.WithCode(err, apperrors.ErrCodeDatabaseError, "查询图书总数失败")
	}

	result := &book.Page{
		Items:   []*book.Book{},
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
	if total == 0 {
		return result, nil
	}

	var models []BookModel
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.WithCode(err, apperrors.ErrCodeDatabaseError, "查询图书列表失败")
	}

	for i := range models {
		result.Items = append(result.Items, toBookEntity(&models[i]))
	}
	return result, nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.WithCode(err, apperrors.ErrCodeDatabaseError, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, attrs book.Attributes) (*book.Book, error) {
	b, err := book.NewBook(attrs.RoundPrice(r.pricePlaces))
	if err != nil {
		return nil, err
	}

	model := toBookModel(b)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, apperrors.WithCode(err, apperrors.ErrCodeDatabaseError, "创建图书失败")
	}

	// 回填自增ID和时间戳
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return b, nil
}

// Update 部分更新图书
// 只写入与当前值不同的字段;没有变化时不访问数据库并返回false
func (r *bookRepository) Update(ctx context.Context, b *book.Book, attrs book.Attributes) (bool, error) {
	changes := attrs.RoundPrice(r.pricePlaces).Changes(b)
	if len(changes) == 0 {
		return false, nil
	}

	result := r.db.WithContext(ctx).
		Model(&BookModel{ID: b.ID}).
		Updates(changes)
	if result.Error != nil {
		return false, apperrors.WithCode(result.Error, apperrors.ErrCodeDatabaseError, "更新图书失败")
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	// 重新读取,拿到数据库里的最终值(含updated_at)
	var model BookModel
	if err := r.db.WithContext(ctx).First(&model, b.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, book.ErrBookNotFound
		}
		return false, apperrors.WithCode(err, apperrors.ErrCodeDatabaseError, "查询图书失败")
	}
	*b = *toBookEntity(&model)
	return true, nil
}

// Delete 删除图书(物理删除)
func (r *bookRepository) Delete(ctx context.Context, b *book.Book) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&BookModel{}, b.ID)
	if result.Error != nil {
		return false, apperrors.WithCode(result.Error, apperrors.ErrCodeDatabaseError, "删除图书失败")
	}
	return result.RowsAffected > 0, nil
}
