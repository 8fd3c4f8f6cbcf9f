package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/ergotrack/internal/error_values"
	"github.com/limbo/ergotrack/internal/goals"
	"github.com/limbo/ergotrack/internal/repository"
	"github.com/limbo/ergotrack/pkg/entity"
)

type GoalsService struct {
	goalsRepo    repository.GoalsRepositoryI
	patientsRepo repository.PatientsRepositoryI
}

func NewGoalsService(goalsRepo repository.GoalsRepositoryI, patientsRepo repository.PatientsRepositoryI) *GoalsService {
	if goalsRepo == nil || patientsRepo == nil {
		log.Fatal("provided nil repos to goals service")
	}
	return &GoalsService{
		goalsRepo:    goalsRepo,
		patientsRepo: patientsRepo,
	}
}

func (gs *GoalsService) CreateGoal(ctx context.Context, req *CreateGoalRequest) (*entity.Goal, error) {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errors.New("validation error: ")
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return nil, err
		}
		return nil, errors.New("validation unexpected error: " + err.Error())
	}
	patient, err := gs.patientsRepo.GetByID(ctx, req.PatientID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrPatientNotFound) {
			return nil, err
		}
		return nil, errors.New("patients repository error: " + err.Error())
	}
	if patient.Status == entity.PatientStatusArchived {
		return nil, errorvalues.ErrPatientArchived
	}
	goal := entity.Goal{
		PatientID: req.PatientID,
		Kind:      entity.GoalKind(req.Kind),
		Text:      req.Text,
	}
	switch goal.Kind {
	case entity.GoalKindSecondary:
		parent, err := gs.goalsRepo.GetByID(ctx, req.ParentID)
		if err != nil {
			if errors.Is(err, errorvalues.ErrGoalNotFound) {
				return nil, errorvalues.ErrParentNotFound
			}
			return nil, errors.New("goals repository error: " + err.Error())
		}
		if parent.Kind != entity.GoalKindPrimary {
			return nil, errorvalues.ErrParentNotFound
		}
		if parent.PatientID != req.PatientID {
			return nil, errorvalues.ErrCrossPatientParent
		}
		goal.ParentID = req.ParentID
		goal.Points = req.Points
	case entity.GoalKindPrimary:
		// primaries never carry authored points or a parent, their state is derived
		if req.Points != 0 || req.ParentID != uuid.Nil {
			return nil, errorvalues.ErrInvalidPrimaryGoal
		}
	}
	id, err := gs.goalsRepo.Create(ctx, &goal)
	if err != nil {
		if errors.Is(err, errorvalues.ErrPatientNotFound) {
			return nil, err
		}
		return nil, errors.New("goals repository error: " + err.Error())
	}
	created, err := gs.goalsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("goals repository error: " + err.Error())
	}
	return created, nil
}

func (gs *GoalsService) GetPatientGoals(ctx context.Context, patientID uuid.UUID) (*PatientGoalsView, error) {
	if _, err := gs.patientsRepo.GetByID(ctx, patientID); err != nil {
		if errors.Is(err, errorvalues.ErrPatientNotFound) {
			return nil, err
		}
		return nil, errors.New("patients repository error: " + err.Error())
	}
	set, err := gs.goalsRepo.GetByPatientID(ctx, patientID)
	if err != nil {
		return nil, errors.New("goals repository error: " + err.Error())
	}
	return &PatientGoalsView{
		Groups:            goals.GroupByPrimary(set),
		StandalonePrimary: goals.StandalonePrimaries(set),
		OrphanSecondaries: goals.OrphanSecondaries(set),
	}, nil
}

func (gs *GoalsService) ToggleGoal(ctx context.Context, goalID uuid.UUID) (*entity.Goal, error) {
	goal, err := gs.goalsRepo.GetByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return nil, err
		}
		return nil, errors.New("goals repository error: " + err.Error())
	}
	patient, err := gs.patientsRepo.GetByID(ctx, goal.PatientID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrPatientNotFound) {
			return nil, err
		}
		return nil, errors.New("patients repository error: " + err.Error())
	}
	if patient.Status == entity.PatientStatusArchived {
		return nil, errorvalues.ErrPatientArchived
	}
	set, err := gs.goalsRepo.GetByPatientID(ctx, goal.PatientID)
	if err != nil {
		return nil, errors.New("goals repository error: " + err.Error())
	}
	updated, err := goals.ToggleSecondary(goalID, set, time.Now())
	if err != nil {
		return nil, err
	}
	var toggled *entity.Goal
	for i := range updated {
		if completionChanged(set[i], updated[i]) {
			err = gs.goalsRepo.UpdateCompletion(ctx, updated[i].ID, updated[i].Completed, updated[i].CompletedAt)
			if err != nil {
				return nil, errors.New("goals repository error: " + err.Error())
			}
		}
		if updated[i].ID == goalID {
			toggled = &updated[i]
		}
	}
	delta := toggled.Points
	if !toggled.Completed {
		delta = -delta
	}
	if err = gs.patientsRepo.AddPoints(ctx, goal.PatientID, delta); err != nil {
		return nil, errors.New("patients repository error: " + err.Error())
	}
	return toggled, nil
}

func (gs *GoalsService) GetPatientStats(ctx context.Context, patientID uuid.UUID) (*entity.PatientGoalStats, error) {
	if _, err := gs.patientsRepo.GetByID(ctx, patientID); err != nil {
		if errors.Is(err, errorvalues.ErrPatientNotFound) {
			return nil, err
		}
		return nil, errors.New("patients repository error: " + err.Error())
	}
	set, err := gs.goalsRepo.GetByPatientID(ctx, patientID)
	if err != nil {
		return nil, errors.New("goals repository error: " + err.Error())
	}
	stats := goals.PatientStats(patientID, set)
	return &stats, nil
}

func (gs *GoalsService) GetWeekProgress(ctx context.Context, patientID uuid.UUID, ref time.Time) (*entity.WeekProgress, error) {
	if _, err := gs.patientsRepo.GetByID(ctx, patientID); err != nil {
		if errors.Is(err, errorvalues.ErrPatientNotFound) {
			return nil, err
		}
		return nil, errors.New("patients repository error: " + err.Error())
	}
	set, err := gs.goalsRepo.GetByPatientID(ctx, patientID)
	if err != nil {
		return nil, errors.New("goals repository error: " + err.Error())
	}
	records := goals.DailyRecords(set, goals.WeekStart(ref))
	week := goals.CalculateWeekProgress(records, ref)
	return &week, nil
}

func completionChanged(before, after entity.Goal) bool {
	if before.Completed != after.Completed {
		return true
	}
	switch {
	case before.CompletedAt == nil && after.CompletedAt == nil:
		return false
	case before.CompletedAt == nil || after.CompletedAt == nil:
		return true
	default:
		return !before.CompletedAt.Equal(*after.CompletedAt)
	}
}
