package env

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Load reads a .env file when present. In deployed environments the
// variables are expected to be set directly.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set directly.")
	}
}

// MustGet returns the value of a mandatory environment variable, exiting
// when it is missing.
func MustGet(key string) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		log.Fatalf("Environment variable %s not set", key)
	}
	return val
}

// Get returns the value of an environment variable, or fallback when unset.
func Get(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
