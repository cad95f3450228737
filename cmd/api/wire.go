//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成 wire_gen.go

package main

import (
	"github.com/google/wire"

	appbook "github.com/BinarniyKot/book-library-api/internal/application/book"
	"github.com/BinarniyKot/book-library-api/internal/infrastructure/config"
	"github.com/BinarniyKot/book-library-api/internal/infrastructure/logger"
	"github.com/BinarniyKot/book-library-api/internal/infrastructure/persistence/redis"
	"github.com/BinarniyKot/book-library-api/internal/infrastructure/persistence/sqlstore"
	"github.com/BinarniyKot/book-library-api/internal/infrastructure/ratelimit"
	"github.com/BinarniyKot/book-library-api/internal/interface/http/handler"
	"github.com/BinarniyKot/book-library-api/internal/interface/http/request"
	"github.com/BinarniyKot/book-library-api/internal/interface/http/router"
)

// infrastructureSet 基础设施层依赖
// 包含：日志、数据库连接、Redis连接、限流器
var infrastructureSet = wire.NewSet(
	logger.New,
	sqlstore.NewDB,
	redis.NewClient,
	ratelimit.New,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	sqlstore.NewBookRepository,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appbook.NewListBooksUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
)

// interfaceSet 接口层依赖
// 包含：请求校验、Handler、路由
var interfaceSet = wire.NewSet(
	request.NewBookValidator,
	handler.NewBookHandler,
	router.New,
)

// InitializeApp 初始化整个应用
// 配置由main先加载（tracing等需要在注入前初始化），作为参数传入
// cleanup按创建的逆序关闭Redis、数据库、日志文件
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		applicationSet,
		interfaceSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
