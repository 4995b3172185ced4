package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads local env files before the yaml config is read.
// Lookup order is .env.local then .env; godotenv never overwrites a
// variable that is already set, so real environment values win over
// .env.local, which wins over .env. Returns the files actually loaded.
func LoadDotEnv() []string {
	var loaded []string
	for _, name := range []string{".env.local", ".env"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err == nil {
			loaded = append(loaded, name)
		}
	}
	return loaded
}
