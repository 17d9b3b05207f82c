package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port  string
	DBDSN string
	Env   string
}

func Load() Config {
	// Optional .env for local development; env vars win.
	_ = godotenv.Load()

	cfg := Config{
		Port:  getenv("PORT", "8080"),
		DBDSN: getenv("DB_DSN", "ventas.db"), // sqlite file in project root
		Env:   getenv("APP_ENV", "development"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s APP_ENV=%s", cfg.Port, cfg.DBDSN, cfg.Env)
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
