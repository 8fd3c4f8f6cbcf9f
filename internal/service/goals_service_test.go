package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/ergotrack/internal/error_values"
	"github.com/limbo/ergotrack/internal/repository"
	"github.com/limbo/ergotrack/internal/service"
	"github.com/limbo/ergotrack/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockState int

const (
	stateSuccess mockState = iota
	stateDBError
	stateTherapistExists
	stateTherapistNotFound
	statePatientNotFound
	statePatientArchived
	stateForeignParent
)

// Variables for tests
var (
	therapistID = uuid.New()
	patientID   = uuid.New()
	primaryID   = uuid.New()
	secondaryID = uuid.New()
	createdAt   = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	testPrimary = entity.Goal{
		ID:        primaryID,
		PatientID: patientID,
		Kind:      entity.GoalKindPrimary,
		Text:      "Improve dressing independence",
		CreatedAt: createdAt,
	}
	testSecondary = entity.Goal{
		ID:        secondaryID,
		PatientID: patientID,
		ParentID:  primaryID,
		Kind:      entity.GoalKindSecondary,
		Text:      "Button a shirt without help",
		Points:    10,
		CreatedAt: createdAt,
	}
)

type goalsRepoMock struct {
	state    mockState
	createID uuid.UUID
}

func (grmock *goalsRepoMock) Create(ctx context.Context, goal *entity.Goal) (uuid.UUID, error) {
	switch grmock.state {
	case statePatientNotFound:
		return uuid.UUID{}, errorvalues.ErrPatientNotFound
	case stateDBError:
		return uuid.UUID{}, errors.New("db error")
	default:
		return grmock.createID, nil
	}
}

func (grmock *goalsRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	switch grmock.state {
	case stateDBError:
		return nil, errors.New("db error")
	case stateForeignParent:
		goal := testPrimary
		goal.PatientID = uuid.New()
		return &goal, nil
	default:
		switch id {
		case primaryID:
			goal := testPrimary
			return &goal, nil
		case secondaryID:
			goal := testSecondary
			return &goal, nil
		default:
			return nil, errorvalues.ErrGoalNotFound
		}
	}
}

func (grmock *goalsRepoMock) GetByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Goal, error) {
	switch grmock.state {
	case stateDBError:
		return nil, errors.New("db error")
	default:
		return []entity.Goal{testPrimary, testSecondary}, nil
	}
}

func (grmock *goalsRepoMock) UpdateCompletion(ctx context.Context, id uuid.UUID, completed bool, completedAt *time.Time) error {
	switch grmock.state {
	case stateDBError:
		return errors.New("db error")
	default:
		return nil
	}
}

func TestCreateGoal(t *testing.T) {
	goalsMock := &goalsRepoMock{state: stateSuccess, createID: primaryID}
	patientsMock := &patientsRepoMock{state: stateSuccess}
	s := service.NewGoalsService(goalsMock, patientsMock)
	ctx := context.Background()
	t.Run("success primary", func(t *testing.T) {
		goal, err := s.CreateGoal(ctx, &service.CreateGoalRequest{
			PatientID: patientID,
			Kind:      string(entity.GoalKindPrimary),
			Text:      testPrimary.Text,
		})
		assert.NoError(t, err)
		assert.Equal(t, testPrimary, *goal)
	})
	t.Run("success secondary", func(t *testing.T) {
		goalsMock.createID = secondaryID
		goal, err := s.CreateGoal(ctx, &service.CreateGoalRequest{
			PatientID: patientID,
			Kind:      string(entity.GoalKindSecondary),
			Text:      testSecondary.Text,
			ParentID:  primaryID,
			Points:    10,
		})
		assert.NoError(t, err)
		assert.Equal(t, testSecondary, *goal)
	})
	t.Run("invalid kind", func(t *testing.T) {
		_, err := s.CreateGoal(ctx, &service.CreateGoalRequest{
			PatientID: patientID,
			Kind:      "tertiary",
			Text:      testPrimary.Text,
		})
		assert.Error(t, err)
	})
	t.Run("primary with authored points", func(t *testing.T) {
		_, err := s.CreateGoal(ctx, &service.CreateGoalRequest{
			PatientID: patientID,
			Kind:      string(entity.GoalKindPrimary),
			Text:      testPrimary.Text,
			Points:    42,
		})
		assert.ErrorIs(t, err, errorvalues.ErrInvalidPrimaryGoal)
	})
	t.Run("primary with parent", func(t *testing.T) {
		_, err := s.CreateGoal(ctx, &service.CreateGoalRequest{
			PatientID: patientID,
			Kind:      string(entity.GoalKindPrimary),
			Text:      testPrimary.Text,
			ParentID:  uuid.New(),
		})
		assert.ErrorIs(t, err, errorvalues.ErrInvalidPrimaryGoal)
	})
	t.Run("patient not found", func(t *testing.T) {
		patientsMock.state = statePatientNotFound
		_, err := s.CreateGoal(ctx, &service.CreateGoalRequest{
			PatientID: patientID,
			Kind:      string(entity.GoalKindPrimary),
			Text:      testPrimary.Text,
		})
		assert.ErrorIs(t, err, errorvalues.ErrPatientNotFound)
		patientsMock.state = stateSuccess
	})
	t.Run("archived patient", func(t *testing.T) {
		patientsMock.state = statePatientArchived
		_, err := s.CreateGoal(ctx, &service.CreateGoalRequest{
			PatientID: patientID,
			Kind:      string(entity.GoalKindPrimary),
			Text:      testPrimary.Text,
		})
		assert.ErrorIs(t, err, errorvalues.ErrPatientArchived)
		patientsMock.state = stateSuccess
	})
	t.Run("parent not found", func(t *testing.T) {
		_, err := s.CreateGoal(ctx, &service.CreateGoalRequest{
			PatientID: patientID,
			Kind:      string(entity.GoalKindSecondary),
			Text:      testSecondary.Text,
			ParentID:  uuid.New(),
			Points:    10,
		})
		assert.ErrorIs(t, err, errorvalues.ErrParentNotFound)
	})
	t.Run("secondary as parent", func(t *testing.T) {
		_, err := s.CreateGoal(ctx, &service.CreateGoalRequest{
			PatientID: patientID,
			Kind:      string(entity.GoalKindSecondary),
			Text:      testSecondary.Text,
			ParentID:  secondaryID,
			Points:    10,
		})
		assert.ErrorIs(t, err, errorvalues.ErrParentNotFound)
	})
	t.Run("parent of another patient", func(t *testing.T) {
		goalsMock.state = stateForeignParent
		_, err := s.CreateGoal(ctx, &service.CreateGoalRequest{
			PatientID: patientID,
			Kind:      string(entity.GoalKindSecondary),
			Text:      testSecondary.Text,
			ParentID:  primaryID,
			Points:    10,
		})
		assert.ErrorIs(t, err, errorvalues.ErrCrossPatientParent)
		goalsMock.state = stateSuccess
	})
	t.Run("db error", func(t *testing.T) {
		goalsMock.state = stateDBError
		_, err := s.CreateGoal(ctx, &service.CreateGoalRequest{
			PatientID: patientID,
			Kind:      string(entity.GoalKindPrimary),
			Text:      testPrimary.Text,
		})
		assert.Error(t, err)
		goalsMock.state = stateSuccess
	})
}

func TestGetPatientGoals(t *testing.T) {
	goalsMock := &goalsRepoMock{state: stateSuccess}
	patientsMock := &patientsRepoMock{state: stateSuccess}
	s := service.NewGoalsService(goalsMock, patientsMock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		view, err := s.GetPatientGoals(ctx, patientID)
		assert.NoError(t, err)
		assert.Equal(t, 1, len(view.Groups))
		assert.Equal(t, primaryID, view.Groups[0].Primary.ID)
		assert.Equal(t, 10, view.Groups[0].TotalPoints)
		assert.Empty(t, view.StandalonePrimary)
		assert.Empty(t, view.OrphanSecondaries)
	})
	t.Run("patient not found", func(t *testing.T) {
		patientsMock.state = statePatientNotFound
		_, err := s.GetPatientGoals(ctx, patientID)
		assert.ErrorIs(t, err, errorvalues.ErrPatientNotFound)
		patientsMock.state = stateSuccess
	})
	t.Run("db error", func(t *testing.T) {
		goalsMock.state = stateDBError
		_, err := s.GetPatientGoals(ctx, patientID)
		assert.Error(t, err)
	})
}

func TestToggleGoal(t *testing.T) {
	goalsMock := &goalsRepoMock{state: stateSuccess}
	patientsMock := &patientsRepoMock{state: stateSuccess}
	s := service.NewGoalsService(goalsMock, patientsMock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		goal, err := s.ToggleGoal(ctx, secondaryID)
		assert.NoError(t, err)
		assert.True(t, goal.Completed)
		assert.NotNil(t, goal.CompletedAt)
	})
	t.Run("goal not found", func(t *testing.T) {
		_, err := s.ToggleGoal(ctx, uuid.New())
		assert.ErrorIs(t, err, errorvalues.ErrGoalNotFound)
	})
	t.Run("primary rejected", func(t *testing.T) {
		_, err := s.ToggleGoal(ctx, primaryID)
		assert.ErrorIs(t, err, errorvalues.ErrNotSecondaryGoal)
	})
	t.Run("archived patient", func(t *testing.T) {
		patientsMock.state = statePatientArchived
		_, err := s.ToggleGoal(ctx, secondaryID)
		assert.ErrorIs(t, err, errorvalues.ErrPatientArchived)
		patientsMock.state = stateSuccess
	})
	t.Run("db error", func(t *testing.T) {
		goalsMock.state = stateDBError
		_, err := s.ToggleGoal(ctx, secondaryID)
		assert.Error(t, err)
		goalsMock.state = stateSuccess
	})
}

func TestGetPatientStats(t *testing.T) {
	goalsMock := &goalsRepoMock{state: stateSuccess}
	patientsMock := &patientsRepoMock{state: stateSuccess}
	s := service.NewGoalsService(goalsMock, patientsMock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		stats, err := s.GetPatientStats(ctx, patientID)
		assert.NoError(t, err)
		assert.Equal(t, patientID, stats.PatientID)
		assert.Equal(t, 1, stats.TotalPrimaryGoals)
		assert.Equal(t, 1, stats.TotalSecondaryGoals)
		assert.Equal(t, 0, stats.CompletedSecondaryGoals)
		assert.Equal(t, 10, stats.TotalPoints)
		assert.Equal(t, 0, stats.EarnedPoints)
	})
	t.Run("patient not found", func(t *testing.T) {
		patientsMock.state = statePatientNotFound
		_, err := s.GetPatientStats(ctx, patientID)
		assert.ErrorIs(t, err, errorvalues.ErrPatientNotFound)
	})
}

func TestGetWeekProgress(t *testing.T) {
	goalsMock := &goalsRepoMock{state: stateSuccess}
	patientsMock := &patientsRepoMock{state: stateSuccess}
	s := service.NewGoalsService(goalsMock, patientsMock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		week, err := s.GetWeekProgress(ctx, patientID, createdAt)
		assert.NoError(t, err)
		assert.Equal(t, 7, len(week.Days))
		assert.Equal(t, 0, week.AverageCompletion)
		assert.Equal(t, 0, week.TotalPoints)
	})
	t.Run("patient not found", func(t *testing.T) {
		patientsMock.state = statePatientNotFound
		_, err := s.GetWeekProgress(ctx, patientID, createdAt)
		assert.ErrorIs(t, err, errorvalues.ErrPatientNotFound)
	})
}

// Full lifecycle against the in-memory repos: create a patient with a
// goal tree, toggle secondaries back and forth and watch derived parent
// completion, gamification points and the week aggregate follow.
func TestGoalsServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	patientsRepo := repository.NewMemoryPatientsRepo()
	goalsRepo := repository.NewMemoryGoalsRepo()
	gs := service.NewGoalsService(goalsRepo, patientsRepo)
	ps := service.NewPatientsService(patientsRepo)

	patient, err := ps.CreatePatient(ctx, &service.CreatePatientRequest{Name: "Michael Chen", Age: 12})
	require.NoError(t, err)
	primary, err := gs.CreateGoal(ctx, &service.CreateGoalRequest{
		PatientID: patient.ID,
		Kind:      string(entity.GoalKindPrimary),
		Text:      "Improve balance and coordination",
	})
	require.NoError(t, err)
	s1, err := gs.CreateGoal(ctx, &service.CreateGoalRequest{
		PatientID: patient.ID,
		Kind:      string(entity.GoalKindSecondary),
		Text:      "Stand on one foot for ten seconds",
		ParentID:  primary.ID,
		Points:    10,
	})
	require.NoError(t, err)
	s2, err := gs.CreateGoal(ctx, &service.CreateGoalRequest{
		PatientID: patient.ID,
		Kind:      string(entity.GoalKindSecondary),
		Text:      "Walk along a straight line",
		ParentID:  primary.ID,
		Points:    15,
	})
	require.NoError(t, err)

	t.Run("grouped view", func(t *testing.T) {
		view, err := gs.GetPatientGoals(ctx, patient.ID)
		require.NoError(t, err)
		require.Equal(t, 1, len(view.Groups))
		assert.Equal(t, 25, view.Groups[0].TotalPoints)
		assert.Equal(t, 0, view.Groups[0].CompletedCount)
		assert.Empty(t, view.StandalonePrimary)
		assert.Empty(t, view.OrphanSecondaries)
	})
	t.Run("first toggle awards points", func(t *testing.T) {
		toggled, err := gs.ToggleGoal(ctx, s1.ID)
		require.NoError(t, err)
		assert.True(t, toggled.Completed)
		p, err := patientsRepo.GetByID(ctx, patient.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, p.Points)
	})
	t.Run("second toggle completes the parent", func(t *testing.T) {
		_, err := gs.ToggleGoal(ctx, s2.ID)
		require.NoError(t, err)
		view, err := gs.GetPatientGoals(ctx, patient.ID)
		require.NoError(t, err)
		assert.True(t, view.Groups[0].Primary.Completed)
		assert.NotNil(t, view.Groups[0].Primary.CompletedAt)
		p, err := patientsRepo.GetByID(ctx, patient.ID)
		require.NoError(t, err)
		assert.Equal(t, 25, p.Points)
	})
	t.Run("untoggle withdraws points and uncompletes the parent", func(t *testing.T) {
		toggled, err := gs.ToggleGoal(ctx, s2.ID)
		require.NoError(t, err)
		assert.False(t, toggled.Completed)
		assert.Nil(t, toggled.CompletedAt)
		view, err := gs.GetPatientGoals(ctx, patient.ID)
		require.NoError(t, err)
		assert.False(t, view.Groups[0].Primary.Completed)
		assert.Nil(t, view.Groups[0].Primary.CompletedAt)
		p, err := patientsRepo.GetByID(ctx, patient.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, p.Points)
	})
	t.Run("stats reflect the current set", func(t *testing.T) {
		stats, err := gs.GetPatientStats(ctx, patient.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.TotalPrimaryGoals)
		assert.Equal(t, 0, stats.CompletedPrimaryGoals)
		assert.Equal(t, 2, stats.TotalSecondaryGoals)
		assert.Equal(t, 1, stats.CompletedSecondaryGoals)
		assert.Equal(t, 25, stats.TotalPoints)
		assert.Equal(t, 10, stats.EarnedPoints)
	})
	t.Run("week aggregate counts today's completion", func(t *testing.T) {
		week, err := gs.GetWeekProgress(ctx, patient.ID, time.Now())
		require.NoError(t, err)
		assert.Equal(t, 7, len(week.Days))
		assert.Equal(t, 10, week.TotalPoints)
		assert.Equal(t, 1, week.BestDay.CompletedGoals)
	})
	t.Run("archived patient is frozen", func(t *testing.T) {
		require.NoError(t, ps.ArchivePatient(ctx, patient.ID))
		_, err := gs.ToggleGoal(ctx, s1.ID)
		assert.ErrorIs(t, err, errorvalues.ErrPatientArchived)
		_, err = gs.CreateGoal(ctx, &service.CreateGoalRequest{
			PatientID: patient.ID,
			Kind:      string(entity.GoalKindPrimary),
			Text:      "Another objective",
		})
		assert.ErrorIs(t, err, errorvalues.ErrPatientArchived)
	})
}
