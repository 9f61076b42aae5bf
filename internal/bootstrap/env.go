package bootstrap

import (
	"log"

	"github.com/joho/godotenv"
)

// Loadenv reads .env from the working directory when present. Variables already set win.
func Loadenv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
}
