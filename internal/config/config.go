package config

import (
	"errors"
	"os"
)

type Config struct {
	Port      string
	DBUrl     string
	JWTSecret string
	RedisAddr string
}

// Load reads the process environment. godotenv is applied by main before
// this runs, so a local .env behaves like real environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:      os.Getenv("PORT"),
		DBUrl:     os.Getenv("DATABASE_URL"),
		JWTSecret: os.Getenv("JWT_SECRET_KEY"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
	}
	if cfg.Port == "" {
		cfg.Port = "3010"
	}
	if cfg.DBUrl == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET_KEY is required")
	}
	return cfg, nil
}
