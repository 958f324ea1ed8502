package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// Enabled reports whether the audit database is configured at all.
// An empty host means the service runs without invocation auditing.
func (c DBConfig) Enabled() bool {
	return c.Host != ""
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type MQConfig struct {
	URL string `yaml:"url"`
}

func (c MQConfig) Enabled() bool {
	return c.URL != ""
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// AdminConfig holds the single operator credential for the /admin surface.
// PasswordHash is a bcrypt hash, never the plaintext password.
type AdminConfig struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// PlanCacheConfig controls the redis result cache for generate_plan.
type PlanCacheConfig struct {
	TTLSeconds int `yaml:"ttl_seconds"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Redis     RedisConfig     `yaml:"redis"`
	MQ        MQConfig        `yaml:"mq"`
	JWT       JWTConfig       `yaml:"jwt"`
	Admin     AdminConfig     `yaml:"admin"`
	PlanCache PlanCacheConfig `yaml:"plan_cache"`
}

func Load() *Config {
	f, err := os.Open("config.yaml")
	if err != nil {
		log.Fatalf("failed to open config.yaml: %v", err)
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		log.Fatalf("failed to decode config.yaml: %v", err)
	}

	// 环境变量覆盖（生产环境使用）
	overrideFromEnv(&cfg)

	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.PlanCache.TTLSeconds <= 0 {
		cfg.PlanCache.TTLSeconds = 60
	}

	return &cfg
}

func overrideFromEnv(cfg *Config) {
	// DB配置
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.DB.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.DB.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.DB.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.DB.Name = name
	}

	// Redis配置
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}

	// MQ配置
	if url := os.Getenv("MQ_URL"); url != "" {
		cfg.MQ.URL = url
	}

	// JWT配置
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}

	// Admin配置
	if username := os.Getenv("ADMIN_USERNAME"); username != "" {
		cfg.Admin.Username = username
	}
	if hash := os.Getenv("ADMIN_PASSWORD_HASH"); hash != "" {
		cfg.Admin.PasswordHash = hash
	}

	// Server配置
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Server.Port = port
	}
}
