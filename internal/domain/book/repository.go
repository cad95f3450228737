package book

import (
	"context"
)

//go:generate mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于替换存储实现(MySQL、SQLite),测试时使用内存SQLite
type Repository interface {
	// Paginate 分页查询,按创建时间倒序
	// Search非空时匹配title、author、genre任一列(不区分大小写的子串)
	Paginate(ctx context.Context, params ListParams) (*Page, error)

	// FindByID 根据ID查找图书,不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Create 创建图书,返回带ID和时间戳的实体
	Create(ctx context.Context, attrs Attributes) (*Book, error)

	// Update 部分更新,只写入提供的字段
	// 返回值表示数据行是否发生变化;成功后b会被刷新为最新状态
	Update(ctx context.Context, b *Book, attrs Attributes) (bool, error)

	// Delete 物理删除,返回是否删除了数据行
	Delete(ctx context.Context, b *Book) (bool, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Search  string // 搜索关键词(标题、作者、类型)
	PerPage int    // 每页数量,<=0 时使用配置的默认值
	Page    int    // 页码(从1开始),<1 时按1处理
}

// Page 分页结果
type Page struct {
	Items   []*Book
	Total   int64
	Page    int
	PerPage int
}

// LastPage 最后一页页码,无数据时为1
func (p *Page) LastPage() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 1
	}
	last := int(p.Total) / p.PerPage
	if int(p.Total)%p.PerPage != 0 {
		last++
	}
	return last
}
