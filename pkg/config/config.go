package config

import (
	"fmt"
	"os"
	"time"

	"cbat/pkg/auth"
	"cbat/pkg/exchanges/coinbase"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// 认证配置
	KeyName   string `yaml:"key_name"`   // API 密钥标识
	KeySecret string `yaml:"key_secret"` // SEC1 EC 私钥，允许使用字面 \n

	// 交易所配置
	BaseURL   string        `yaml:"base_url"`
	Host      string        `yaml:"host"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`

	// 日志配置
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"` // 为空时只输出到 stderr
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		BaseURL:  coinbase.BaseURL,
		Host:     coinbase.Host,
		Timeout:  30 * time.Second,
		LogLevel: "info",
	}
}

// LoadConfig 依次加载 .env、YAML 文件（path 非空时）和环境变量，后者优先。
func LoadConfig(path string) (*Config, error) {
	// 加载.env文件
	if err := godotenv.Load(); err != nil {
		logrus.Debug("未找到.env文件，使用环境变量")
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.KeyName = getEnv(auth.KeyNameVariable, cfg.KeyName)
	cfg.KeySecret = getEnv(auth.KeySecretVariable, cfg.KeySecret)
	cfg.BaseURL = getEnv("CBAT_BASE_URL", cfg.BaseURL)
	cfg.Host = getEnv("CBAT_HOST", cfg.Host)
	cfg.Timeout = getEnvDuration("CBAT_TIMEOUT", cfg.Timeout)
	cfg.UserAgent = getEnv("CBAT_USER_AGENT", cfg.UserAgent)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)

	return cfg, nil
}

// Credentials 返回签名凭证，缺少任一字段时返回 *exchanges.ConfigurationError
func (c *Config) Credentials() (auth.Credentials, error) {
	creds := auth.Credentials{KeyName: c.KeyName, KeySecret: c.KeySecret}
	if err := creds.Validate(); err != nil {
		return auth.Credentials{}, err
	}
	return creds, nil
}

// Exchange 返回交易所客户端配置
func (c *Config) Exchange() *coinbase.Config {
	return &coinbase.Config{
		BaseURL:   c.BaseURL,
		Host:      c.Host,
		Timeout:   c.Timeout,
		UserAgent: c.UserAgent,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		logrus.Warnf("无法解析环境变量 %s 的时间间隔值: %s，使用默认值: %s", key, value, defaultValue)
	}
	return defaultValue
}
