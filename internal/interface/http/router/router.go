package router

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appbook "github.com/BinarniyKot/book-library-api/internal/application/book"
	"github.com/BinarniyKot/book-library-api/internal/infrastructure/config"
	"github.com/BinarniyKot/book-library-api/internal/infrastructure/ratelimit"
	"github.com/BinarniyKot/book-library-api/internal/interface/http/handler"
	"github.com/BinarniyKot/book-library-api/internal/interface/http/middleware"
	apperrors "github.com/BinarniyKot/book-library-api/pkg/errors"
	"github.com/BinarniyKot/book-library-api/pkg/metrics"
	"github.com/BinarniyKot/book-library-api/pkg/response"
)

func init() {
	// 请求体中的数字解码为json.Number,保留原始精度供校验器判断整数和小数位
	binding.EnableDecoderUseNumber = true
}

// New 创建Gin引擎并注册全部路由
//
// 路由表：
//
//	GET    /ping
//	GET    /metrics
//	GET    /swagger/*any        (release模式下不注册)
//	GET    /api/books
//	POST   /api/books
//	GET    /api/books/:book
//	PATCH  /api/books/:book
//	PUT    /api/books/:book
//	DELETE /api/books/:book
//
// /api 下的路由统一经过限流
func New(
	cfg *config.Config,
	log zerolog.Logger,
	bookHandler *handler.BookHandler,
	getBook *appbook.GetBookUseCase,
	limiter ratelimit.Limiter,
) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode, gin.DebugMode:
		gin.SetMode(cfg.Server.Mode)
	}

	metrics.InitMetrics()

	r := gin.New()
	r.HandleMethodNotAllowed = true

	// RequestID在最外层,Tracing先于Logger,这样访问日志能带上trace_id
	r.Use(
		middleware.RequestID(),
		middleware.Tracing(),
		middleware.Logger(log),
		middleware.Recovery(),
		middleware.Metrics(),
	)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.ErrNotFound)
	})
	r.NoMethod(func(c *gin.Context) {
		response.Error(c, apperrors.ErrMethodNotAllowed)
	})

	r.GET("/ping", handler.Ping)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	api.Use(middleware.Throttle(limiter))
	{
		books := api.Group("/books")
		books.GET("", bookHandler.Index)
		books.POST("", bookHandler.Store)

		book := books.Group("/:" + middleware.BookParam)
		book.Use(middleware.BindBook(getBook))
		{
			book.GET("", bookHandler.Show)
			book.PATCH("", bookHandler.Update)
			book.PUT("", bookHandler.Update)
			book.DELETE("", bookHandler.Destroy)
		}
	}

	return r
}
