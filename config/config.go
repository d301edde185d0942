package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 存储所有配置信息
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	ServerPort  string `mapstructure:"SERVER_PORT"`
	APIPrefix   string `mapstructure:"API_PREFIX"`
	CORSOrigins string `mapstructure:"CORS_ORIGINS"`
	LogDir      string `mapstructure:"LOG_DIR"`

	// 数据库配置
	DBDriver   string `mapstructure:"DB_DRIVER"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBPath     string `mapstructure:"DB_PATH"`

	// Redis配置, REDIS_HOST 为空时不启用列表缓存
	RedisHost       string `mapstructure:"REDIS_HOST"`
	RedisPort       string `mapstructure:"REDIS_PORT"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int    `mapstructure:"REDIS_DB"`
	CacheTTLSeconds int    `mapstructure:"CACHE_TTL_SECONDS"`

	// JWT配置, 为空时接口不做认证
	JWTSecret string `mapstructure:"JWT_SECRET"`
}

var defaults = map[string]any{
	"ENVIRONMENT":       "development",
	"SERVER_PORT":       "8080",
	"API_PREFIX":        "/api",
	"CORS_ORIGINS":      "*",
	"LOG_DIR":           "logs",
	"DB_DRIVER":         "sqlite",
	"DB_HOST":           "127.0.0.1",
	"DB_PORT":           "3306",
	"DB_USER":           "root",
	"DB_PASSWORD":       "",
	"DB_NAME":           "todo",
	"DB_PATH":           "todo.db",
	"REDIS_HOST":        "",
	"REDIS_PORT":        "6379",
	"REDIS_PASSWORD":    "",
	"REDIS_DB":          0,
	"CACHE_TTL_SECONDS": 300,
	"JWT_SECRET":        "",
}

// LoadConfig 从环境变量或配置文件加载配置
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	// 环境变量只有在 key 已知时才会被 Unmarshal 读取
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	err = v.ReadInConfig()
	if err != nil {
		// 允许配置文件不存在，此时会从环境变量中读取
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = v.Unmarshal(&config)
	return
}

// GetDBConnString 返回数据库连接字符串
func (c *Config) GetDBConnString() string {
	switch c.DBDriver {
	case "mysql":
		// clientFoundRows: UPDATE 命中但未改变的行也计入 RowsAffected
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	default:
		return c.DBPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
}

// GetRedisConnString 返回Redis连接字符串
func (c *Config) GetRedisConnString() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// CacheTTL 返回任务列表缓存的有效期
func (c *Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// AllowedOrigins 解析逗号分隔的 CORS 来源
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
