package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"
)

// Config holds all configuration
type Config struct {
	MySQL     MySQLConfig
	Redis     RedisConfig
	Probe     ProbeConfig
	Migrate   bool
	HTTPAddr  string
	APIPrefix string
	LogLevel  string
}

// MySQLConfig holds MySQL configuration
type MySQLConfig struct {
	DSN            string
	PingTimeoutSec int
}

// RedisConfig holds Redis configuration for the status cache
type RedisConfig struct {
	Enabled      bool
	Addr         string
	Password     string
	DB           int
	StatusTTLSec int
}

// ProbeConfig holds reachability probe configuration
type ProbeConfig struct {
	TimeoutSec int
}

const defaultDSN = "devinv:devinv@tcp(localhost:3306)/devinv?charset=utf8mb4&parseTime=True&loc=Local"

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		MySQL: MySQLConfig{
			DSN:            getEnv("MYSQL_DSN", defaultDSN),
			PingTimeoutSec: getEnvInt("MYSQL_PING_TIMEOUT_SEC", 1),
		},
		Redis: RedisConfig{
			Enabled:      getEnv("REDIS_ENABLED", "1") == "1",
			Addr:         getEnv("REDIS_ADDR", "localhost:6379"),
			Password:     getEnv("REDIS_PASS", ""),
			DB:           getEnvInt("REDIS_DB", 0),
			StatusTTLSec: getEnvInt("STATUS_CACHE_TTL_SEC", 300),
		},
		Probe: ProbeConfig{
			TimeoutSec: getEnvInt("PROBE_TIMEOUT_SEC", 3),
		},
		Migrate:   getEnv("MIGRATE", "1") == "1",
		HTTPAddr:  getEnv("HTTP_ADDR", "0.0.0.0:3001"),
		APIPrefix: getEnv("API_PREFIX", "/api/v1"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// LoadFromINI loads configuration from INI file with environment variable override
func LoadFromINI(iniPath string) (*Config, error) {
	cfgFile, err := ini.Load(iniPath)
	if err != nil {
		return nil, err
	}

	// Helper function: get value with priority: ENV > INI > default
	getValue := func(envKey, iniSection, iniKey, defaultValue string) string {
		if value := os.Getenv(envKey); value != "" {
			return value
		}
		if value := cfgFile.Section(iniSection).Key(iniKey).String(); value != "" {
			return value
		}
		return defaultValue
	}

	getValueInt := func(envKey, iniSection, iniKey string, defaultValue int) int {
		if value := os.Getenv(envKey); value != "" {
			if intValue, err := strconv.Atoi(value); err == nil {
				return intValue
			}
		}
		if cfgFile.Section(iniSection).HasKey(iniKey) {
			if value, err := cfgFile.Section(iniSection).Key(iniKey).Int(); err == nil {
				return value
			}
		}
		return defaultValue
	}

	getValueBool := func(envKey, iniSection, iniKey string, defaultValue bool) bool {
		if value := os.Getenv(envKey); value != "" {
			return value == "1" || value == "true"
		}
		if value, err := cfgFile.Section(iniSection).Key(iniKey).Bool(); err == nil {
			return value
		}
		return defaultValue
	}

	cfg := &Config{
		MySQL: MySQLConfig{
			DSN:            getValue("MYSQL_DSN", "mysql", "dsn", defaultDSN),
			PingTimeoutSec: getValueInt("MYSQL_PING_TIMEOUT_SEC", "mysql", "ping_timeout_sec", 1),
		},
		Redis: RedisConfig{
			Enabled:      getValueBool("REDIS_ENABLED", "redis", "enabled", true),
			Addr:         getValue("REDIS_ADDR", "redis", "addr", "localhost:6379"),
			Password:     getValue("REDIS_PASS", "redis", "pass", ""),
			DB:           getValueInt("REDIS_DB", "redis", "db", 0),
			StatusTTLSec: getValueInt("STATUS_CACHE_TTL_SEC", "redis", "status_ttl_sec", 300),
		},
		Probe: ProbeConfig{
			TimeoutSec: getValueInt("PROBE_TIMEOUT_SEC", "probe", "timeout_sec", 3),
		},
		Migrate:   getValueBool("MIGRATE", "app", "migrate", true),
		HTTPAddr:  getValue("HTTP_ADDR", "http", "addr", "0.0.0.0:3001"),
		APIPrefix: getValue("API_PREFIX", "http", "api_prefix", "/api/v1"),
		LogLevel:  getValue("LOG_LEVEL", "app", "log_level", "info"),
	}

	return cfg, nil
}
