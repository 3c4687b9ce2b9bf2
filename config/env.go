package config

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env when present. A missing file is fine; deployment
// sets real environment variables.
func LoadEnv() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}
}
