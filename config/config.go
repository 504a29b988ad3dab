package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreSQL   = "sql"
	StoreLocal = "local"
)

type Config struct {
	AppEnv          string        `mapstructure:"APP_ENV"`
	HTTPPort        string        `mapstructure:"HTTP_PORT"`
	GRPCPort        string        `mapstructure:"GRPC_PORT"`
	StoreDriver     string        `mapstructure:"STORE_DRIVER"`
	DBDriver        string        `mapstructure:"DB_DRIVER"`
	DBPath          string        `mapstructure:"DB_PATH"`
	DBHost          string        `mapstructure:"DB_HOST"`
	DBPort          string        `mapstructure:"DB_PORT"`
	DBUser          string        `mapstructure:"DB_USER"`
	DBPassword      string        `mapstructure:"DB_PASSWORD"`
	DBName          string        `mapstructure:"DB_NAME"`
	LocalStorePath  string        `mapstructure:"LOCAL_STORE_PATH"`
	SeedSampleData  bool          `mapstructure:"SEED_SAMPLE_DATA"`
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RateLimit       int           `mapstructure:"RATE_LIMIT"`
	RateLimitWindow time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`
	AllowedOrigins  string        `mapstructure:"ALLOWED_ORIGINS"`
}

var defaults = map[string]interface{}{
	"APP_ENV":           "development",
	"HTTP_PORT":         ":5000",
	"GRPC_PORT":         "",
	"STORE_DRIVER":      StoreSQL,
	"DB_DRIVER":         "sqlite",
	"DB_PATH":           "users.db",
	"DB_HOST":           "localhost",
	"DB_PORT":           "5432",
	"DB_USER":           "",
	"DB_PASSWORD":       "",
	"DB_NAME":           "users",
	"LOCAL_STORE_PATH":  "users.json",
	"SEED_SAMPLE_DATA":  false,
	"REDIS_ADDR":        "",
	"RATE_LIMIT":        60,
	"RATE_LIMIT_WINDOW": time.Minute,
	"ALLOWED_ORIGINS":   "*",
}

func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.AutomaticEnv()

	// Явно биндим, чтобы Unmarshal видел переменные без файла
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err = v.BindEnv(key); err != nil {
			return
		}
	}

	// Файла нет? Работаем на ENV и дефолтах
	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	err = config.Validate()
	return
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreSQL:
		switch c.DBDriver {
		case "sqlite":
			if c.DBPath == "" {
				return fmt.Errorf("DB_PATH is required for sqlite")
			}
		case "postgres":
			if c.DBHost == "" || c.DBName == "" {
				return fmt.Errorf("DB_HOST and DB_NAME are required for postgres")
			}
		default:
			return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
		}
	case StoreLocal:
		if c.LocalStorePath == "" {
			return fmt.Errorf("LOCAL_STORE_PATH is required for the local store")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT is required")
	}
	return nil
}

// DSN returns the connection string for the configured SQL driver.
func (c Config) DSN() string {
	if c.DBDriver == "postgres" {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
	}
	return c.DBPath
}

func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
