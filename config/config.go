package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Files    FilesConfig
}

type AppConfig struct {
	Env string
}

type DatabaseConfig struct {
	Driver string
	URL    string
}

type FilesConfig struct {
	InventoryCSV string
	BackupCSV    string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Env: getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver: getEnv("DATABASE_DRIVER", "sqlite"),
			URL:    getEnv("DATABASE_URL", "inventory.db"),
		},
		Files: FilesConfig{
			InventoryCSV: getEnv("INVENTORY_CSV", "inventory.csv"),
			BackupCSV:    getEnv("BACKUP_CSV", "backup.csv"),
		},
	}

	log.Printf("Config loaded: env=%s, driver=%s", cfg.App.Env, cfg.Database.Driver)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
