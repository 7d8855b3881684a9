// Command seed populates the development database with demo content.
package main

import (
	"flag"
	"log"

	"typehero/internal/config"
	"typehero/internal/database"
	"typehero/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numComments := flag.Int("comments", 200, "Number of comments to create")
	maxDays := flag.Int("max-days", 90, "Spread created_at over the last N days")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		NumUsers:    *numUsers,
		NumComments: *numComments,
		MaxDays:     *maxDays,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
