package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 进程级配置，Load 之后只读
type Config struct {
	AppName                  string `mapstructure:"app_name"`
	Env                      string `mapstructure:"env"` // debug | release
	ServerAddr               string `mapstructure:"server_addr"`
	SecretKey                string `mapstructure:"secret_key"`
	AccessTokenExpireMinutes int    `mapstructure:"access_token_expire_minutes"`
	DatabaseURL              string `mapstructure:"database_url"`
	FrontendOrigin           string `mapstructure:"frontend_origin"`
	UploadDir                string `mapstructure:"upload_dir"`
	TemplateGlob             string `mapstructure:"template_glob"`
	RedisAddr                string `mapstructure:"redis_addr"`
	CacheTTLSeconds          int    `mapstructure:"cache_ttl_seconds"`
	SentryDSN                string `mapstructure:"sentry_dsn"`
	OTLPEndpoint             string `mapstructure:"otlp_endpoint"`
}

// TokenTTL 访问令牌有效期
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// CacheTTL 计数缓存有效期
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Load 读取配置：默认值 < config.yaml < 环境变量
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("app_name", "InstaLite")
	v.SetDefault("env", "debug")
	v.SetDefault("server_addr", ":8080")
	v.SetDefault("secret_key", "CHANGE_ME")
	v.SetDefault("access_token_expire_minutes", 120)
	v.SetDefault("database_url", "app.db")
	v.SetDefault("frontend_origin", "http://localhost:5173")
	v.SetDefault("upload_dir", "static/uploads")
	v.SetDefault("template_glob", "web/templates/*.html")
	v.SetDefault("redis_addr", "")
	v.SetDefault("cache_ttl_seconds", 60)
	v.SetDefault("sentry_dsn", "")
	v.SetDefault("otlp_endpoint", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
