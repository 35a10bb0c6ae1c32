package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
	UploadPath  string // folder untuk gambar galeri & bukti pembayaran
}

func Load() *Config {
	// .env opsional, untuk development lokal
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=wedding_demo port=5432 sslmode=disable"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET belum di-set! Wajib untuk production.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET minimal 32 karakter!")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=wedding_demo port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN masih default, set koneksi Postgres sendiri untuk production.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS masih default, set domain sendiri untuk production.")
	}

	if err := os.MkdirAll(cfg.UploadPath, 0o755); err != nil {
		log.Fatalf("[FATAL] Folder upload tidak bisa dibuat: %v", err)
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
