package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Postgres struct {
		Host            string        `env:"POSTGRES_HOST" envDefault:"localhost"`
		Port            int           `env:"POSTGRES_PORT" envDefault:"5432"`
		User            string        `env:"POSTGRES_USER" envDefault:"postgres"`
		Password        string        `env:"POSTGRES_PASSWORD" envDefault:""`
		Database        string        `env:"POSTGRES_DB" envDefault:"matrimony"`
		SSLMode         string        `env:"POSTGRES_SSLMODE" envDefault:"disable"`
		MaxOpenConns    int           `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"25"`
		MaxIdleConns    int           `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"5"`
		ConnMaxLifetime time.Duration `env:"POSTGRES_CONN_MAX_LIFETIME" envDefault:"30m"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Storage struct {
		Region     string `env:"STORAGE_REGION" envDefault:"ap-south-1"`
		Bucket     string `env:"STORAGE_BUCKET" envDefault:"profile-images"`
		Endpoint   string `env:"STORAGE_ENDPOINT" envDefault:""`
		PublicRead bool   `env:"STORAGE_PUBLIC_READ" envDefault:"true"`
	}

	Media struct {
		TargetSizeKB int `env:"MEDIA_TARGET_SIZE_KB" envDefault:"500"`
		MaxUploadMB  int `env:"MEDIA_MAX_UPLOAD_MB" envDefault:"20"`
	}

	// Seeded bootstrap credentials for the single admin identity.
	Admin struct {
		Mobile   string `env:"ADMIN_MOBILE" envDefault:"9381493260"`
		Password string `env:"ADMIN_PASSWORD" envDefault:"9398601984"`
		Name     string `env:"ADMIN_NAME" envDefault:"Admin"`
	}
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Postgres.Host, c.Postgres.Port, c.Postgres.User,
		c.Postgres.Password, c.Postgres.Database, c.Postgres.SSLMode)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func Load() *Config {
	// Environment variables may be set directly in production;
	// a missing .env file is not an error.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
