package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构
// 设计说明：使用Viper管理配置，支持YAML文件、.env文件、环境变量覆盖
// 加载完成后只读，通过依赖注入传递，不使用全局变量
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
	Books     BooksConfig     `mapstructure:"books"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug | release | test
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // mysql | sqlite
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	Charset         string        `mapstructure:"charset"`
	ParseTime       bool          `mapstructure:"parse_time"`
	Loc             string        `mapstructure:"loc"`
	Path            string        `mapstructure:"path"` // sqlite文件路径，":memory:"表示内存库
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN 生成MySQL连接字符串
// 格式：user:password@tcp(host:port)/dbname?charset=utf8mb4&parseTime=True&loc=Local
// 注意：loc参数需要URL编码（Asia/Shanghai → Asia%2FShanghai）
func (d DatabaseConfig) DSN() string {
	loc := url.QueryEscape(d.Loc)
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.Charset, d.ParseTime, loc)
}

type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr 返回Redis地址
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug | info | warn | error
	Format string `mapstructure:"format"` // console | json
	Output string `mapstructure:"output"` // stdout | stderr | /path/to/file
}

// BooksConfig 图书资源相关的业务配置
type BooksConfig struct {
	MaxStringLength       int `mapstructure:"max_string_length"`
	DefaultPerPage        int `mapstructure:"default_per_page"`
	MaxPerPage            int `mapstructure:"max_per_page"`
	PriceDecimalPrecision int `mapstructure:"price_decimal_precision"`
	ThrottlePerMinute     int `mapstructure:"throttle_per_minute"`
}

const (
	RateLimitDriverMemory = "memory"
	RateLimitDriverRedis  = "redis"
)

type RateLimitConfig struct {
	Driver string `mapstructure:"driver"` // memory | redis
	// Redis连续失败BreakerMaxFailures次后熔断，BreakerTimeout内直接使用内存限流
	BreakerMaxFailures int           `mapstructure:"breaker_max_failures"`
	BreakerTimeout     time.Duration `mapstructure:"breaker_timeout"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
	Endpoint    string `mapstructure:"endpoint"` // OTLP gRPC端点，如 localhost:4317
}

// setDefaults 默认值与 config/config.yaml 保持一致，配置文件缺失时也能启动
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "5s")

	v.SetDefault("database.driver", DriverMySQL)
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "books")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parse_time", true)
	v.SetDefault("database.loc", "Local")
	v.SetDefault("database.path", "./books.db")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("books.max_string_length", 255)
	v.SetDefault("books.default_per_page", 15)
	v.SetDefault("books.max_per_page", 100)
	v.SetDefault("books.price_decimal_precision", 2)
	v.SetDefault("books.throttle_per_minute", 60)

	v.SetDefault("rate_limit.driver", RateLimitDriverMemory)
	v.SetDefault("rate_limit.breaker_max_failures", 5)
	v.SetDefault("rate_limit.breaker_timeout", "30s")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "book-library-api")
	v.SetDefault("tracing.endpoint", "localhost:4317")
}

// Load 加载配置
// 优先级（高→低）：
// 1. 环境变量（前缀BOOKSTORE_，如BOOKSTORE_BOOKS_MAX_PER_PAGE → books.max_per_page）
// 2. .env 文件（存在时加载到进程环境变量）
// 3. config/config.yaml，可通过BOOKSTORE_ENV指定环境（如config.prod.yaml）
// 4. 内置默认值
func Load() (*Config, error) {
	// .env 不存在不是错误
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("BOOKSTORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	if env := v.GetString("env"); env != "" {
		v.SetConfigName("config." + env)
	}
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 配置校验
func (cfg *Config) Validate() error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("无效的服务端口: %d", cfg.Server.Port)
	}

	switch cfg.Database.Driver {
	case DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("不支持的数据库驱动: %q", cfg.Database.Driver)
	}

	b := cfg.Books
	if b.MaxStringLength <= 0 {
		return fmt.Errorf("books.max_string_length必须大于0: %d", b.MaxStringLength)
	}
	if b.MaxPerPage < 1 {
		return fmt.Errorf("books.max_per_page必须大于0: %d", b.MaxPerPage)
	}
	if b.DefaultPerPage < 1 || b.DefaultPerPage > b.MaxPerPage {
		return fmt.Errorf("books.default_per_page必须在1到%d之间: %d", b.MaxPerPage, b.DefaultPerPage)
	}
	// decimal(10, N)，小数位不能超过总位数
	if b.PriceDecimalPrecision < 0 || b.PriceDecimalPrecision > 8 {
		return fmt.Errorf("books.price_decimal_precision必须在0到8之间: %d", b.PriceDecimalPrecision)
	}
	if b.ThrottlePerMinute < 1 {
		return fmt.Errorf("books.throttle_per_minute必须大于0: %d", b.ThrottlePerMinute)
	}

	switch cfg.RateLimit.Driver {
	case RateLimitDriverMemory:
	case RateLimitDriverRedis:
		if !cfg.Redis.Enabled {
			return fmt.Errorf("rate_limit.driver=redis 需要开启 redis.enabled")
		}
	default:
		return fmt.Errorf("不支持的限流驱动: %q", cfg.RateLimit.Driver)
	}
	if cfg.RateLimit.BreakerMaxFailures < 0 {
		return fmt.Errorf("rate_limit.breaker_max_failures不能为负: %d", cfg.RateLimit.BreakerMaxFailures)
	}

	return nil
}
