package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App     AppConfig     `yaml:"app"`
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	Log     LogConfig     `yaml:"log"`
	Wrapper WrapperConfig `yaml:"wrapper"`
}

type AppConfig struct {
	Name string `yaml:"name"`
	Env  string `yaml:"env"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type StoreConfig struct {
	Type      string      `yaml:"type"`
	KeyPrefix string      `yaml:"key_prefix"`
	Redis     RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

type WrapperConfig struct {
	MinTTLSeconds int64 `yaml:"min_ttl_seconds"`
}

func Default() *Config {
	return &Config{
		App: AppConfig{
			Name: "wrapper",
			Env:  "dev",
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Store: StoreConfig{
			Type:      "memory",
			KeyPrefix: "wrapper",
			Redis: RedisConfig{
				Addr:     "localhost:6379",
				Password: "",
				DB:       0,
			},
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: false,
		},
		Wrapper: WrapperConfig{
			MinTTLSeconds: 30,
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			return nil, err
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File not found is OK, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

func (c *Config) loadFromEnv() {
	if v := os.Getenv("WRAPPER_APP_NAME"); v != "" {
		c.App.Name = v
	}
	if v := os.Getenv("WRAPPER_ENV"); v != "" {
		c.App.Env = v
	}

	if v := os.Getenv("HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}

	if v := os.Getenv("STORE_TYPE"); v != "" {
		c.Store.Type = v
	}
	if v := os.Getenv("STORE_KEY_PREFIX"); v != "" {
		c.Store.KeyPrefix = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Store.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Store.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Store.Redis.DB = db
		}
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_PRETTY"); v != "" {
		c.Log.Pretty = v == "true" || v == "1"
	}

	if v := os.Getenv("MIN_TTL_SECONDS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Wrapper.MinTTLSeconds = n
		}
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if c.Store.Type != "memory" && c.Store.Type != "redis" {
		return fmt.Errorf("invalid store type: %s (must be 'memory' or 'redis')", c.Store.Type)
	}

	if c.Store.Type == "redis" && c.Store.Redis.Addr == "" {
		return fmt.Errorf("redis addr is required when store type is 'redis'")
	}

	if c.Store.KeyPrefix == "" {
		return fmt.Errorf("store key_prefix is required")
	}

	if c.Wrapper.MinTTLSeconds < 1 {
		return fmt.Errorf("min_ttl_seconds must be positive")
	}

	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
