package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/BinarniyKot/book-library-api/internal/infrastructure/config"
)

// New 根据日志配置创建zerolog.Logger，并设置为全局logger
// 设计说明：
// 1. format=console 适合本地开发（彩色、可读），json 适合生产环境采集
// 2. output 支持 stdout、stderr 或文件路径（追加写入）
// 3. 返回的cleanup负责关闭日志文件
func New(cfg *config.Config) (zerolog.Logger, func(), error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out, cleanup, err := openOutput(cfg.Log.Output)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	if cfg.Log.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}
	}

	l := zerolog.New(out).Level(level).With().Timestamp().Logger()

	zerolog.SetGlobalLevel(level)
	log.Logger = l

	return l, cleanup, nil
}

func openOutput(output string) (io.Writer, func(), error) {
	switch output {
	case "", "stdout":
		return os.Stdout, func() {}, nil
	case "stderr":
		return os.Stderr, func() {}, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("打开日志文件失败: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
