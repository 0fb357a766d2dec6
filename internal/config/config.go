package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

// StorageConfig backend 可选 memory / redis / database
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	Driver  string `mapstructure:"driver"` // database 时生效：mysql / sqlite
	DSN     string `mapstructure:"dsn"`
	LogMode bool   `mapstructure:"log_mode"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	RequireRoster bool   `mapstructure:"require_roster"`
	AccessSecret  string `mapstructure:"access_secret"`
	RefreshSecret string `mapstructure:"refresh_secret"`
}

type CatalogConfig struct {
	ClubsPath       string `mapstructure:"clubs_path"`
	StudentsPath    string `mapstructure:"students_path"`
	MembershipsPath string `mapstructure:"memberships_path"`
}

type SMTPConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	SMTP    SMTPConfig    `mapstructure:"smtp"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
}

var (
	appConfig *Config
	once      sync.Once
)

// Load 启动时读一次，path 为空取当前目录的 config.yaml
// 环境变量前缀 ANSXTRA，如 ANSXTRA_SERVER_PORT=9000
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		v.SetDefault("server.address", "0.0.0.0")
		v.SetDefault("server.port", 8080)
		v.SetDefault("server.mode", "debug")
		v.SetDefault("storage.backend", "memory")
		v.SetDefault("auth.require_roster", true)
		v.SetDefault("catalog.clubs_path", "data/clubs.json")
		v.SetDefault("catalog.students_path", "data/students.json")
		v.SetDefault("catalog.memberships_path", "data/memberships.json")

		v.SetEnvPrefix("ANSXTRA")
		v.AutomaticEnv()

		if err = v.ReadInConfig(); err != nil {
			err = fmt.Errorf("read config: %w", err)
			return
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

// Get 返回已加载的全局配置，启动时先调用 Load
func Get() *Config {
	return appConfig
}
