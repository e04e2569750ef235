package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ==================== 应用配置 ====================

// Config 应用配置，来源：config.yaml + 环境变量覆盖
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Tasks    TasksConfig    `mapstructure:"tasks"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug | release
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// JWTConfig 令牌配置
type JWTConfig struct {
	Secret          string        `mapstructure:"secret"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
	Issuer          string        `mapstructure:"issuer"`
}

// GatewayConfig 支付网关配置
type GatewayConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
}

// TasksConfig 定时任务开关
type TasksConfig struct {
	PublishEnabled   bool `mapstructure:"publish_enabled"`
	CouponEnabled    bool `mapstructure:"coupon_enabled"`
	AnalyticsEnabled bool `mapstructure:"analytics_enabled"`
}

// Load 加载配置
// 找不到配置文件时退回默认值 + 环境变量，方便容器部署
func Load(path string) *Config {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.dsn", "host=localhost user=glowskin password=glowskin dbname=glowskin port=5432 sslmode=disable")
	v.SetDefault("jwt.secret", "glowskin-secret-key-change-in-production")
	v.SetDefault("jwt.access_token_ttl", 2*time.Hour)
	v.SetDefault("jwt.refresh_token_ttl", 7*24*time.Hour)
	v.SetDefault("jwt.issuer", "glowskin")
	v.SetDefault("gateway.base_url", "")
	v.SetDefault("gateway.api_key", "")
	v.SetDefault("gateway.api_secret", "")
	v.SetDefault("tasks.publish_enabled", true)
	v.SetDefault("tasks.coupon_enabled", true)
	v.SetDefault("tasks.analytics_enabled", true)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")

	// GLOWSKIN_SERVER_PORT 这类环境变量覆盖同名配置
	v.SetEnvPrefix("GLOWSKIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Printf("未找到配置文件，使用默认值: %v", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("配置解析失败: %v", err)
	}
	return &cfg
}
