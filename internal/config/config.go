package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	APIBaseURL   string
	TemplatesDir string
	LogFile      string
}

func Load() Config {
	// .env is optional; deployments normally set the environment directly.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	api := os.Getenv("INVENTORY_API_URL")
	if api == "" {
		api = "http://localhost:3000"
	}
	tmpl := os.Getenv("TEMPLATES_DIR")
	if tmpl == "" {
		tmpl = "./web/templates"
	}
	logFile := os.Getenv("LOG_FILE")

	cfg := Config{Port: port, APIBaseURL: api, TemplatesDir: tmpl, LogFile: logFile}
	log.Printf("[config] PORT=%s INVENTORY_API_URL=%s TEMPLATES_DIR=%s LOG_FILE=%s",
		cfg.Port, cfg.APIBaseURL, cfg.TemplatesDir, cfg.LogFile)
	return cfg
}
