package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/protocol"
)

// EnvPrefix 环境变量前缀，例如 EMP_SERVER_PORT
const EnvPrefix = "EMP"

// Config 应用程序配置结构
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	PodID   string        `mapstructure:"pod_id"`
	Server  ServerConfig  `mapstructure:"server"`
	Hubject HubjectConfig `mapstructure:"hubject"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	EMP     EMPConfig     `mapstructure:"emp"`
}

// AppConfig 应用信息
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Profile string `mapstructure:"profile"` // dev, test, prod
}

// ServerConfig 入站OICP接口配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	BasePath     string        `mapstructure:"base_path"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// HubjectConfig 出站Hubject接口配置
type HubjectConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	PageSize       int           `mapstructure:"page_size"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
	// CacheSize 进程内会话缓存的条目数，0 表示不缓存
	CacheSize int           `mapstructure:"cache_size"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

// Enabled addr为空时使用内存存储
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// KafkaConfig Kafka配置
type KafkaConfig struct {
	Brokers       []string `mapstructure:"brokers"`
	EventTopic    string   `mapstructure:"event_topic"`
	CommandTopic  string   `mapstructure:"command_topic"`
	ConsumerGroup string   `mapstructure:"consumer_group"`
}

// Enabled 未配置broker时事件只写日志，也不消费远程指令
func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
	Async  bool   `mapstructure:"async"`
}

// MetricsConfig 监控指标配置
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// EMPConfig 服务商业务配置
type EMPConfig struct {
	ProviderID string `mapstructure:"provider_id"`
	// AuthorizedIdentifications 白名单，元素为 Identification.Key 格式，例如 "UID:1234ABCD" 或 "EVCO:DE-GDF-C12345678-X"
	AuthorizedIdentifications []string `mapstructure:"authorized_identifications"`
	// StopIdentifications 授权开始时随响应下发、允许停止充电的认证信息，格式同上
	StopIdentifications []string `mapstructure:"stop_identifications"`
}

// SetDefaults 设置默认配置
func SetDefaults() {
	viper.SetDefault("app.name", "oicp-emp-gateway")
	viper.SetDefault("app.version", "dev")
	viper.SetDefault("app.profile", "dev")

	viper.SetDefault("pod_id", "emp-gateway-0")

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.base_path", protocol.BasePath)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")

	viper.SetDefault("hubject.base_url", "https://service-qa.hubject.com")
	viper.SetDefault("hubject.request_timeout", "60s")
	viper.SetDefault("hubject.page_size", 2000)

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.pool_size", 20)
	viper.SetDefault("redis.dial_timeout", "5s")
	viper.SetDefault("redis.read_timeout", "3s")
	viper.SetDefault("redis.write_timeout", "3s")
	viper.SetDefault("redis.session_ttl", "48h")
	viper.SetDefault("redis.cache_size", 10000)
	viper.SetDefault("redis.cache_ttl", "30s")

	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("kafka.event_topic", "emp-events")
	viper.SetDefault("kafka.command_topic", "emp-commands")
	viper.SetDefault("kafka.consumer_group", "emp-gateway")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.async", false)

	viper.SetDefault("metrics.addr", ":9090")

	viper.SetDefault("emp.provider_id", "DE*GDF")
	viper.SetDefault("emp.authorized_identifications", []string{})
	viper.SetDefault("emp.stop_identifications", []string{})
}

// Load 加载配置：默认值、可选的 config.yaml 以及 EMP_ 前缀的环境变量
func Load() (*Config, error) {
	SetDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 检查配置的必填项
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.EMP.ProviderID == "" {
		return fmt.Errorf("emp.provider_id must not be empty")
	}
	if c.Hubject.BaseURL == "" {
		return fmt.Errorf("hubject.base_url must not be empty")
	}
	if c.Kafka.Enabled() && (c.Kafka.EventTopic == "" || c.Kafka.CommandTopic == "") {
		return fmt.Errorf("kafka topics must not be empty when brokers are configured")
	}
	return nil
}

// GetServerAddr 获取服务器地址
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetMetricsAddr 获取监控地址
func (c *Config) GetMetricsAddr() string {
	return c.Metrics.Addr
}

func (c *Config) IsDevelopment() bool { return c.App.Profile == "dev" }
func (c *Config) IsTest() bool        { return c.App.Profile == "test" }
func (c *Config) IsProduction() bool  { return c.App.Profile == "prod" }
