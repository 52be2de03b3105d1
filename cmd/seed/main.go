// Command main runs the database seeder for MusicMarket.
package main

import (
	"flag"
	"log"

	"github.com/EmirArslaan/MusicMarketProject/internal/config"
	"github.com/EmirArslaan/MusicMarketProject/internal/database"
	"github.com/EmirArslaan/MusicMarketProject/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numListings := flag.Int("listings", 200, "Number of listings to create")
	numBands := flag.Int("bands", 40, "Number of band posts to create")
	numBlogs := flag.Int("blogs", 25, "Number of blog posts to create")
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

	s := seed.NewSeeder(db)
	if err := s.Run(seed.Options{
		NumUsers:    *numUsers,
		NumListings: *numListings,
		NumBands:    *numBands,
		NumBlogs:    *numBlogs,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
