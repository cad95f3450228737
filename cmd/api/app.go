package main

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BinarniyKot/book-library-api/internal/infrastructure/ratelimit"
)

// App 由Wire组装的运行时对象
type App struct {
	Engine  *gin.Engine
	Limiter ratelimit.Limiter
	Log     zerolog.Logger
}
