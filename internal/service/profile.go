package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aifolio/backend/internal/models"
	"github.com/aifolio/backend/internal/types"
)

// ProfileService reads and writes the single profile document owned by
// each user.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// Get loads the caller's profile, failing with ErrProfileNotFound if it
// does not exist.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("created_by = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// GetOrCreate returns the caller's profile, lazily creating a blank one
// seeded from the session identity on first access. The insert goes
// through ON CONFLICT DO NOTHING on created_by, so concurrent first
// reads cannot create two profiles.
func (s *ProfileService) GetOrCreate(ctx context.Context, claims *types.TokenClaims) (*models.Profile, error) {
	blank := models.Profile{
		CreatedBy:  claims.UserID,
		Name:       claims.Name,
		Email:      claims.Email,
		Skills:     models.StringArray{},
		Education:  models.EducationList{},
		Experience: models.ExperienceList{},
		Projects:   models.ProjectList{},
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "created_by"}},
			DoNothing: true,
		}).
		Create(&blank).Error
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, claims.UserID)
}

// Update merges the supplied fields into the caller's profile, creating
// it first if absent. Only fields present in the request change; an
// email, when supplied, must still look like an address.
func (s *ProfileService) Update(ctx context.Context, claims *types.TokenClaims, req *types.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.GetOrCreate(ctx, claims)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		profile.Name = strings.TrimSpace(req.Name)
	}
	if req.Email != "" {
		if !emailPattern.MatchString(req.Email) {
			return nil, validationErr("email", "Invalid email format")
		}
		profile.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.Website != nil {
		profile.Website = *req.Website
	}
	if req.Github != nil {
		profile.Github = *req.Github
	}
	if req.Linkedin != nil {
		profile.Linkedin = *req.Linkedin
	}
	if req.Skills != nil {
		profile.Skills = NormalizeSkills(req.Skills)
	}
	if req.Education != nil {
		list := make(models.EducationList, 0, len(req.Education))
		for _, e := range req.Education {
			list = append(list, models.Education(e))
		}
		profile.Education = list
	}
	if req.Experience != nil {
		list := make(models.ExperienceList, 0, len(req.Experience))
		for _, e := range req.Experience {
			list = append(list, models.Experience(e))
		}
		profile.Experience = list
	}

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}
