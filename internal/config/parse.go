package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Parse loads configuration from a .env file (if present) and the process
// environment, then validates the values main cannot run without.
func Parse() (Config, error) {
	godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse cfg: %w", err)
	}

	if len(cfg.Auth.JWTSecret) < 32 {
		return Config{}, fmt.Errorf("AUTH_JWT_SECRET must be at least 32 characters")
	}
	if cfg.Auth.BcryptCost < 4 || cfg.Auth.BcryptCost > 14 {
		return Config{}, fmt.Errorf("AUTH_BCRYPT_COST must be between 4 and 14, got %d", cfg.Auth.BcryptCost)
	}

	return cfg, nil
}
