package main

import (
	"github.com/rs/zerolog/log"

	"github.com/BinarniyKot/book-library-api/internal/infrastructure/config"
	"github.com/BinarniyKot/book-library-api/internal/infrastructure/logger"
	"github.com/BinarniyKot/book-library-api/internal/infrastructure/persistence/sqlstore"
)

// 执行一次表结构迁移后退出
// 字符串列长度与价格小数位取自books配置
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("加载配置失败")
	}

	l, closeLog, err := logger.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("初始化日志失败")
	}
	defer closeLog()

	// 由下面显式迁移，避免NewDB里重复执行
	cfg.Database.AutoMigrate = false

	db, closeDB, err := sqlstore.NewDB(cfg, l)
	if err != nil {
		l.Fatal().Err(err).Msg("连接数据库失败")
	}
	defer closeDB()

	if err := sqlstore.Migrate(db, cfg.Books); err != nil {
		l.Fatal().Err(err).Msg("迁移失败")
	}

	l.Info().
		Str("driver", cfg.Database.Driver).
		Int("max_string_length", cfg.Books.MaxStringLength).
		Int("price_decimal_precision", cfg.Books.PriceDecimalPrecision).
		Msg("迁移完成")
}
