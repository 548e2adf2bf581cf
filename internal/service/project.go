package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aifolio/backend/internal/models"
	"github.com/aifolio/backend/internal/types"
)

const (
	ActionAddProject    = "addProject"
	ActionUpdateProject = "updateProject"
	ActionDeleteProject = "deleteProject"
)

// ProjectService manages the project entries embedded in a profile.
// All mutation goes through the owning profile row; a concurrent edit
// to the same profile waits on the row lock rather than losing writes.
type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

// List returns the caller's projects in insertion order. A profile with
// no projects yields an empty slice, not an error.
func (s *ProjectService) List(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	profile, err := s.loadProfile(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if profile.Projects == nil {
		return []models.Project{}, nil
	}
	return profile.Projects, nil
}

// Get returns one project by id.
func (s *ProjectService) Get(ctx context.Context, userID, projectID uuid.UUID) (*models.Project, error) {
	profile, err := s.loadProfile(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	idx := findProject(profile, projectID)
	if idx < 0 {
		return nil, ErrProjectNotFound
	}
	project := profile.Projects[idx]
	return &project, nil
}

// Create appends a new project with a generated id and fresh
// timestamps. Title is required.
func (s *ProjectService) Create(ctx context.Context, userID uuid.UUID, in *types.ProjectInput) (*models.Project, error) {
	var created models.Project
	_, err := s.mutateProfile(ctx, userID, func(profile *models.Profile) error {
		project, err := buildProject(in)
		if err != nil {
			return err
		}
		profile.Projects = append(profile.Projects, *project)
		created = *project
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update applies only the supplied fields to the identified project and
// refreshes its updated-at timestamp.
func (s *ProjectService) Update(ctx context.Context, userID, projectID uuid.UUID, in *types.ProjectInput) (*models.Project, error) {
	var updated models.Project
	_, err := s.mutateProfile(ctx, userID, func(profile *models.Profile) error {
		idx := findProject(profile, projectID)
		if idx < 0 {
			return ErrProjectNotFound
		}
		applyProjectInput(&profile.Projects[idx], in)
		updated = profile.Projects[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the identified project, preserving the relative order
// of the remainder.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	_, err := s.mutateProfile(ctx, userID, func(profile *models.Profile) error {
		idx := findProject(profile, projectID)
		if idx < 0 {
			return ErrProjectNotFound
		}
		profile.Projects = append(profile.Projects[:idx], profile.Projects[idx+1:]...)
		return nil
	})
	return err
}

// Dispatch executes a named profile-level project action and returns
// the resulting profile.
func (s *ProjectService) Dispatch(ctx context.Context, userID uuid.UUID, action *types.ProfileAction) (*models.Profile, error) {
	switch action.Action {
	case ActionAddProject:
		return s.mutateProfile(ctx, userID, func(profile *models.Profile) error {
			project, err := buildProject(&action.ProjectData)
			if err != nil {
				return err
			}
			profile.Projects = append(profile.Projects, *project)
			return nil
		})
	case ActionUpdateProject:
		projectID, err := uuid.Parse(action.ProjectID)
		if err != nil {
			return nil, ErrProjectNotFound
		}
		return s.mutateProfile(ctx, userID, func(profile *models.Profile) error {
			idx := findProject(profile, projectID)
			if idx < 0 {
				return ErrProjectNotFound
			}
			applyProjectInput(&profile.Projects[idx], &action.ProjectData)
			return nil
		})
	case ActionDeleteProject:
		projectID, err := uuid.Parse(action.ProjectID)
		if err != nil {
			return nil, ErrProjectNotFound
		}
		return s.mutateProfile(ctx, userID, func(profile *models.Profile) error {
			idx := findProject(profile, projectID)
			if idx < 0 {
				return ErrProjectNotFound
			}
			profile.Projects = append(profile.Projects[:idx], profile.Projects[idx+1:]...)
			return nil
		})
	default:
		return nil, ErrInvalidAction
	}
}

// mutateProfile runs fn against the caller's profile inside a
// transaction and persists the projects column. On postgres the profile
// row is read FOR UPDATE so concurrent project edits serialize.
func (s *ProjectService) mutateProfile(ctx context.Context, userID uuid.UUID, fn func(*models.Profile) error) (*models.Profile, error) {
	var profile *models.Profile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		loaded, err := s.loadProfile(ctx, q, userID)
		if err != nil {
			return err
		}
		if err := fn(loaded); err != nil {
			return err
		}
		if err := tx.Model(&models.Profile{}).Where("id = ?", loaded.ID).
			Update("projects", loaded.Projects).Error; err != nil {
			return err
		}
		profile = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProjectService) loadProfile(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := db.WithContext(ctx).Where("created_by = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func findProject(profile *models.Profile, projectID uuid.UUID) int {
	for i, p := range profile.Projects {
		if p.ID == projectID {
			return i
		}
	}
	return -1
}

func buildProject(in *types.ProjectInput) (*models.Project, error) {
	if in.Title == nil || *in.Title == "" {
		return nil, validationErr("title", "Title is required")
	}
	now := time.Now()
	project := models.Project{
		ID:        uuid.New(),
		Title:     *in.Title,
		Skills:    NormalizeSkills(in.Skills),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.GithubURL != nil {
		project.GithubURL = *in.GithubURL
	}
	if in.DemoURL != nil {
		project.DemoURL = *in.DemoURL
	}
	if in.ImageURL != nil {
		project.ImageURL = *in.ImageURL
	}
	return &project, nil
}

func applyProjectInput(project *models.Project, in *types.ProjectInput) {
	if in.Title != nil {
		project.Title = *in.Title
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.Skills != nil {
		project.Skills = NormalizeSkills(in.Skills)
	}
	if in.GithubURL != nil {
		project.GithubURL = *in.GithubURL
	}
	if in.DemoURL != nil {
		project.DemoURL = *in.DemoURL
	}
	if in.ImageURL != nil {
		project.ImageURL = *in.ImageURL
	}
	project.UpdatedAt = time.Now()
}
