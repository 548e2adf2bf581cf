package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aifolio/backend/internal/service"
	"github.com/aifolio/backend/internal/testhelpers"
	"github.com/aifolio/backend/internal/types"
)

func strPtr(s string) *string { return &s }

// TestPortfolioFlow walks the full account lifecycle against a real
// PostgreSQL instance: register, authenticate, fill in the profile,
// manage projects and read the aggregated skill ranking.
func TestPortfolioFlow(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)
	ctx := context.Background()

	authSvc := service.NewAuthService(db, "integration-secret", nil)
	profileSvc := service.NewProfileService(db)
	projectSvc := service.NewProjectService(db)

	user, err := authSvc.Register(ctx, &types.RegisterRequest{
		Name:     "Grace Hopper",
		Email:    "grace@example.com",
		Password: "compilers",
	})
	require.NoError(t, err)

	token, err := authSvc.Login(ctx, "grace@example.com", "compilers")
	require.NoError(t, err)
	claims, err := authSvc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	profile, err := profileSvc.Update(ctx, claims, &types.UpdateProfileRequest{
		Bio:    strPtr("ML systems engineer"),
		Skills: []string{"Go", "Python"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ML systems engineer", profile.Bio)

	first, err := projectSvc.Create(ctx, user.ID, &types.ProjectInput{
		Title:  strPtr("Classifier"),
		Skills: []interface{}{"Python", "PyTorch"},
	})
	require.NoError(t, err)

	_, err = projectSvc.Create(ctx, user.ID, &types.ProjectInput{
		Title:  strPtr("Forecaster"),
		Skills: "python, R",
	})
	require.NoError(t, err)

	loaded, err := profileSvc.Get(ctx, user.ID)
	require.NoError(t, err)
	skills := service.TopSkills(loaded)
	require.NotEmpty(t, skills)
	assert.Equal(t, types.SkillCount{Name: "python", Count: 2}, skills[0])

	require.NoError(t, projectSvc.Delete(ctx, user.ID, first.ID))
	remaining, err := projectSvc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Forecaster", remaining[0].Title)
}

// TestConcurrentRegistration races registrations for one email and
// verifies exactly one account wins; every loser gets the conflict
// error whether it failed the pre-check or the unique index.
func TestConcurrentRegistration(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)
	ctx := context.Background()

	authSvc := service.NewAuthService(db, "integration-secret", nil)

	const attempts = 4
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := authSvc.Register(ctx, &types.RegisterRequest{
				Name:     "Grace Hopper",
				Email:    "grace@example.com",
				Password: "compilers",
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, conflicted int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, service.ErrEmailTaken)
			conflicted++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicted)
}

// TestConcurrentProjectWrites adds projects from many goroutines and
// verifies none of the writes are lost to a stale read.
func TestConcurrentProjectWrites(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)
	ctx := context.Background()

	authSvc := service.NewAuthService(db, "integration-secret", nil)
	projectSvc := service.NewProjectService(db)

	user, err := authSvc.Register(ctx, &types.RegisterRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "analytical",
	})
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := projectSvc.Create(ctx, user.ID, &types.ProjectInput{
				Title: strPtr(fmt.Sprintf("Project %d", n)),
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	projects, err := projectSvc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, projects, workers)
}
