package main

import (
	"flag"
	"log"

	"quickchat/config"
	"quickchat/pkg/database"
)

func main() {
	seed := flag.Bool("seed", false, "seed a development dataset after migrating")
	flag.Parse()

	cfg := config.LoadConfig()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}
	log.Println("Migrations applied")

	if *seed {
		if err := database.Seed(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}
}
