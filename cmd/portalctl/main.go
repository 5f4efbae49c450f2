package main

import (
	"log"

	"suviet_server/config"
	"suviet_server/internal/commands"
)

func main() {
	// A missing .env is fine; flags and the environment still apply.
	_ = config.Load()
	if err := config.InitializeTimezone(); err != nil {
		log.Printf("timezone setup failed, using local time: %v", err)
	}

	if err := commands.New().Execute(); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}
