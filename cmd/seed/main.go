package main

import (
	"log"

	"profile-match-be/internal/config"
	"profile-match-be/internal/model"
	"profile-match-be/pkg/database"

	"github.com/fatih/color"
	"gorm.io/datatypes"
)

// Seeds a handful of members so the populate endpoint has something to
// ingest on a fresh database.
func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("DB_CONNECTION_STRING is required for seeding")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	if err := db.AutoMigrate(&model.Member{}); err != nil {
		log.Fatalf("Failed to migrate members table: %v", err)
	}

	members := []model.Member{
		{
			Name:      "Mary Walker",
			Email:     "mary@example.com",
			Bio:       "I am a farmer. Experienced in organic farming and crop rotation.",
			Interests: datatypes.JSON([]byte(`["sustainability","gardening"]`)),
			Location:  "Portland",
			IsActive:  true,
		},
		{
			Name:      "John Carter",
			Email:     "john@example.com",
			Bio:       "Working as a software engineer, proficient in distributed systems.",
			Interests: datatypes.JSON([]byte(`["open source","hiking"]`)),
			Location:  "Austin",
			IsActive:  true,
		},
		{
			Name:      "Alice Nguyen",
			Email:     "alice@example.com",
			Bio:       "I'm a graphic designer with experience in branding and illustration.",
			Interests: datatypes.JSON([]byte(`["art","photography"]`)),
			Location:  "Portland",
			IsActive:  true,
		},
		{
			Name:      "Sam Ortiz",
			Email:     "sam@example.com",
			Bio:       "Chef focused on farm-to-table cooking.",
			Interests: datatypes.JSON([]byte(`["cooking","gardening"]`)),
			Location:  "Austin",
			IsActive:  true,
		},
		{
			Name:      "Inactive Ivan",
			Email:     "ivan@example.com",
			Bio:       "Retired accountant.",
			Interests: datatypes.JSON([]byte(`[]`)),
			IsActive:  false,
		},
	}

	seeded := 0
	for i := range members {
		var count int64
		db.Model(&model.Member{}).Where("email = ?", members[i].Email).Count(&count)
		if count > 0 {
			color.Yellow("skip %s (already seeded)", members[i].Email)
			continue
		}
		if err := db.Create(&members[i]).Error; err != nil {
			color.Red("failed to seed %s: %v", members[i].Email, err)
			continue
		}
		seeded++
		color.Green("seeded %s", members[i].Email)
	}

	color.Cyan("done: %d members seeded", seeded)
}
