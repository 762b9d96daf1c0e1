// cmd/seeder/main.go
//
// Seeds the configured store with one demo campaign and a couple of
// greetings so the frontend has something to show on a fresh install.
package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/wishwell/wishwell-backend/internal/config"
	"github.com/wishwell/wishwell-backend/internal/model"
	"github.com/wishwell/wishwell-backend/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, relying on OS environment variables")
	}

	cfg := config.Load()

	var campaignRepo repository.CampaignRepositoryInterface
	var greetingRepo repository.GreetingRepositoryInterface
	if cfg.StorageBackend == "postgres" {
		db, err := repository.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			logrus.Fatalf("failed to connect to postgres: %v", err)
		}
		campaignRepo = &repository.PostgresCampaignRepository{DB: db}
		greetingRepo = &repository.PostgresGreetingRepository{DB: db}
	} else {
		campaignRepo = repository.NewJSONCampaignRepository(cfg.DataDir)
		greetingRepo = repository.NewJSONGreetingRepository(cfg.DataDir)
	}

	now := time.Now().UTC()
	campaign := model.Campaign{
		ID: uuid.NewString(),
		BirthdayPerson: model.BirthdayPerson{
			Name:        "Ada Lovelace",
			DateOfBirth: "1990-12-10",
			Interests:   []string{"mathematics", "music"},
		},
		Gatherer: model.Gatherer{
			Name:  "Charles Babbage",
			Email: "charles@example.com",
		},
		InvitedEmails: []string{"grace@example.com", "alan@example.com"},
		Status:        model.StatusCollecting,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	campaigns, err := campaignRepo.List()
	if err != nil {
		logrus.Fatalf("failed to read campaigns: %v", err)
	}
	campaigns = append(campaigns, campaign)
	if err := campaignRepo.SaveAll(campaigns); err != nil {
		logrus.Fatalf("failed to seed campaigns: %v", err)
	}
	fmt.Printf("Seeded campaign: %s\n", campaign.ID)

	greetings, err := greetingRepo.List("")
	if err != nil {
		logrus.Fatalf("failed to read greetings: %v", err)
	}
	greetings = append(greetings,
		model.Greeting{
			ID:          uuid.NewString(),
			CampaignID:  campaign.ID,
			Message:     "Happy birthday! Wishing you a wonderful year.",
			SenderName:  "Grace Hopper",
			SenderEmail: "grace@example.com",
			CreatedAt:   now,
		},
		model.Greeting{
			ID:          uuid.NewString(),
			CampaignID:  campaign.ID,
			Message:     "Many happy returns!",
			SenderName:  "Alan Turing",
			SenderEmail: "alan@example.com",
			CreatedAt:   now,
		},
	)
	if err := greetingRepo.SaveAll(greetings); err != nil {
		logrus.Fatalf("failed to seed greetings: %v", err)
	}
	fmt.Printf("Seeded %d greetings\n", 2)

	fmt.Println("Seeding completed successfully!")
}
