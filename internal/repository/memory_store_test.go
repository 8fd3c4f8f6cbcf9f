package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/ergotrack/internal/error_values"
	"github.com/limbo/ergotrack/internal/repository"
	"github.com/limbo/ergotrack/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ repository.TherapistsRepositoryI = (*repository.MemoryTherapistsRepo)(nil)
	_ repository.PatientsRepositoryI   = (*repository.MemoryPatientsRepo)(nil)
	_ repository.GoalsRepositoryI      = (*repository.MemoryGoalsRepo)(nil)
	_ repository.CommentsRepositoryI   = (*repository.MemoryCommentsRepo)(nil)
)

func TestMemoryGoalsRepo(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryGoalsRepo()
	pid := uuid.New()
	primaryID, err := repo.Create(ctx, &entity.Goal{
		PatientID: pid,
		Kind:      entity.GoalKindPrimary,
		Text:      "Improve dressing independence",
	})
	require.NoError(t, err)
	secondaryID, err := repo.Create(ctx, &entity.Goal{
		PatientID: pid,
		ParentID:  primaryID,
		Kind:      entity.GoalKindSecondary,
		Text:      "Button a shirt without help",
		Points:    10,
	})
	require.NoError(t, err)
	t.Run("found by id", func(t *testing.T) {
		goal, err := repo.GetByID(ctx, secondaryID)
		require.NoError(t, err)
		assert.Equal(t, primaryID, goal.ParentID)
		assert.False(t, goal.CreatedAt.IsZero())
	})
	t.Run("not found by id", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, errorvalues.ErrGoalNotFound)
	})
	t.Run("patient set keeps creation order", func(t *testing.T) {
		gs, err := repo.GetByPatientID(ctx, pid)
		require.NoError(t, err)
		require.Equal(t, 2, len(gs))
		assert.Equal(t, primaryID, gs[0].ID)
		assert.Equal(t, secondaryID, gs[1].ID)
	})
	t.Run("update completion", func(t *testing.T) {
		doneAt := time.Now()
		require.NoError(t, repo.UpdateCompletion(ctx, secondaryID, true, &doneAt))
		goal, err := repo.GetByID(ctx, secondaryID)
		require.NoError(t, err)
		assert.True(t, goal.Completed)
		require.NotNil(t, goal.CompletedAt)
		assert.True(t, goal.CompletedAt.Equal(doneAt))
	})
	t.Run("update of unknown goal", func(t *testing.T) {
		err := repo.UpdateCompletion(ctx, uuid.New(), true, nil)
		assert.ErrorIs(t, err, errorvalues.ErrGoalNotFound)
	})
	t.Run("reads return copies", func(t *testing.T) {
		goal, err := repo.GetByID(ctx, primaryID)
		require.NoError(t, err)
		goal.Text = "mutated"
		fresh, err := repo.GetByID(ctx, primaryID)
		require.NoError(t, err)
		assert.Equal(t, "Improve dressing independence", fresh.Text)
	})
}

func TestSeedDemoData(t *testing.T) {
	ctx := context.Background()
	therapists := repository.NewMemoryTherapistsRepo()
	patients := repository.NewMemoryPatientsRepo()
	goals := repository.NewMemoryGoalsRepo()
	require.NoError(t, repository.SeedDemoData(therapists, patients, goals))

	t.Run("demo therapist exists", func(t *testing.T) {
		therapist, err := therapists.FindByName(ctx, "sarah_martinez")
		require.NoError(t, err)
		assert.NotEmpty(t, therapist.PasswordHash)
	})
	t.Run("active and archived patients", func(t *testing.T) {
		all, err := patients.List(ctx, repository.ListPatientsOpts{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 4, len(all))
		archived, err := patients.List(ctx, repository.ListPatientsOpts{Limit: 10, Status: entity.PatientStatusArchived})
		require.NoError(t, err)
		require.Equal(t, 1, len(archived))
		assert.NotNil(t, archived[0].ArchivedAt)
	})
	t.Run("first patient has a goal tree", func(t *testing.T) {
		all, err := patients.List(ctx, repository.ListPatientsOpts{Limit: 1})
		require.NoError(t, err)
		require.Equal(t, 1, len(all))
		gs, err := goals.GetByPatientID(ctx, all[0].ID)
		require.NoError(t, err)
		assert.Equal(t, 8, len(gs))
		completed := 0
		for _, g := range gs {
			if g.Kind == entity.GoalKindSecondary && g.Completed {
				require.NotNil(t, g.CompletedAt)
				completed++
			}
		}
		assert.Equal(t, 3, completed)
	})
}
