package main

import (
	"log"

	"github.com/sava-app/sava/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ sava failed to start: %v", err)
	}
}
