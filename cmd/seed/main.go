// Command seed inserts a demo user with a populated profile for local
// development.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/aifolio/backend/config"
	"github.com/aifolio/backend/internal/database"
	"github.com/aifolio/backend/internal/models"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	const email = "demo@example.com"

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("Demo user %s already exists, nothing to do", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Name:         "Demo User",
		Email:        email,
		PasswordHash: string(hash),
	}

	now := time.Now()
	profile := models.Profile{
		Name:     user.Name,
		Email:    user.Email,
		Bio:      "ML engineer exploring applied deep learning.",
		Location: "Berlin, Germany",
		Github:   "https://github.com/demo",
		Skills:   models.StringArray{"Python", "PyTorch", "Go"},
		Education: models.EducationList{
			{Institution: "TU Berlin", Degree: "MSc Computer Science", Period: "2018-2020"},
		},
		Experience: models.ExperienceList{
			{Company: "Acme AI", Position: "ML Engineer", Period: "2020-present"},
		},
		Projects: models.ProjectList{
			{
				ID:          uuid.New(),
				Title:       "Image classifier",
				Description: "CNN-based image classification service.",
				Skills:      []string{"Python", "PyTorch"},
				GithubURL:   "https://github.com/demo/classifier",
				CreatedAt:   now,
				UpdatedAt:   now,
			},
			{
				ID:          uuid.New(),
				Title:       "Portfolio backend",
				Description: "This very API.",
				Skills:      []string{"Go", "PostgreSQL"},
				CreatedAt:   now,
				UpdatedAt:   now,
			},
		},
	}

	err = db.WithContext(context.Background()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile.CreatedBy = user.ID
		return tx.Create(&profile).Error
	})
	if err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}

	log.Printf("Seeded demo user %s (password: demo-password)", email)
}
