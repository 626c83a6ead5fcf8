package internal

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config is built once in main and handed to the router; no package-level
// state holds the secret or the store handle.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   []byte
	UploadDir   string
}

func LoadConfig() (Config, error) {
	// carrega .env (opcional em produção)
	_ = godotenv.Load()

	cfg := Config{
		Port:        os.Getenv("PORT"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		UploadDir:   os.Getenv("UPLOAD_DIR"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Config{}, errors.New("JWT_SECRET is not set")
	}
	cfg.JWTSecret = []byte(secret)
	return cfg, nil
}
