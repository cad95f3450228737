package main

import (
	"context"
	"flag"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BinarniyKot/book-library-api/internal/domain/book"
	"github.com/BinarniyKot/book-library-api/internal/infrastructure/config"
	"github.com/BinarniyKot/book-library-api/internal/infrastructure/logger"
	"github.com/BinarniyKot/book-library-api/internal/infrastructure/persistence/sqlstore"
)

func main() {
	var (
		count = flag.Int("count", 50, "生成的图书数量")
		seed  = flag.Uint64("seed", 0, "随机种子,0表示使用当前时间")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("加载配置失败")
	}

	l, closeLog, err := logger.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("初始化日志失败")
	}
	defer closeLog()

	db, closeDB, err := sqlstore.NewDB(cfg, l)
	if err != nil {
		l.Fatal().Err(err).Msg("连接数据库失败")
	}
	defer closeDB()

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	repo := sqlstore.NewBookRepository(db, cfg)
	factory := book.NewFactory(*seed)
	ctx := context.Background()

	for i := 0; i < *count; i++ {
		if _, err := repo.Create(ctx, factory.Make()); err != nil {
			l.Fatal().Err(err).Int("created", i).Msg("写入图书失败")
		}
		if (i+1)%100 == 0 {
			l.Info().Msgf("已生成 %d/%d", i+1, *count)
		}
	}

	l.Info().Int("count", *count).Uint64("seed", *seed).Msg("图书数据生成完成")
}
