package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/ergotrack/pkg/entity"
)

type PaginationOpts struct {
	Limit  int
	Offset int
}

type RegisterRequest struct {
	Name     string `validate:"required,alphanum_underscore,min=3,max=100"`
	Password string `validate:"required,min=8,max=72"`
}

type CreatePatientRequest struct {
	Name string `validate:"required,min=2,max=200"`
	Age  int    `validate:"required,gte=1,lte=120"`
}

type ListPatientsRequest struct {
	Pagination PaginationOpts
	Search     string
	Status     string `validate:"omitempty,oneof=active archived"`
}

type CreateGoalRequest struct {
	PatientID uuid.UUID `validate:"required"`
	Kind      string    `validate:"required,oneof=primary secondary"`
	Text      string    `validate:"required,min=3,max=500"`
	ParentID  uuid.UUID
	Points    int `validate:"gte=0"`
}

type AddCommentRequest struct {
	Kind string `validate:"required,oneof=note absence progress"`
	Text string `validate:"required,min=1,max=2000"`
}

// PatientGoalsView is the full rendering payload for a patient's goal
// tree. Standalone primaries and orphan secondaries are listed apart so
// the UI can show them distinctly instead of hiding them.
type PatientGoalsView struct {
	Groups            []entity.PrimaryGoalGroup `json:"groups"`
	StandalonePrimary []entity.Goal             `json:"standalone_primaries"`
	OrphanSecondaries []entity.Goal             `json:"orphan_secondaries"`
}

type TherapistServiceI interface {
	// Validates therapist's credentials, creates new row in storage. Returns therapist's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.Therapist, error)
	// Compares given credentials. If ok, gives back therapist's data with ID.
	Login(ctx context.Context, name, password string) (*entity.Therapist, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Therapist, error)
}

type PatientsServiceI interface {
	CreatePatient(ctx context.Context, req *CreatePatientRequest) (*entity.Patient, error)
	GetPatients(ctx context.Context, req *ListPatientsRequest) ([]*entity.Patient, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*entity.Patient, error)
	// Moves patient to archived status keeping earned points
	ArchivePatient(ctx context.Context, id uuid.UUID) error
}

type GoalsServiceI interface {
	// Creates a primary goal or a secondary attached to an existing
	// primary of the same patient
	CreateGoal(ctx context.Context, req *CreateGoalRequest) (*entity.Goal, error)
	// Full grouped goal tree plus integrity views
	GetPatientGoals(ctx context.Context, patientID uuid.UUID) (*PatientGoalsView, error)
	// Flips a secondary's completion, re-derives parents, persists the
	// changes and adjusts the patient's points. Returns the toggled goal
	ToggleGoal(ctx context.Context, goalID uuid.UUID) (*entity.Goal, error)
	GetPatientStats(ctx context.Context, patientID uuid.UUID) (*entity.PatientGoalStats, error)
	// Week aggregate around ref derived from real completion stamps
	GetWeekProgress(ctx context.Context, patientID uuid.UUID, ref time.Time) (*entity.WeekProgress, error)
}

type CommentsServiceI interface {
	AddComment(ctx context.Context, therapistID, patientID uuid.UUID, req *AddCommentRequest) (*entity.Comment, error)
	GetPatientComments(ctx context.Context, patientID uuid.UUID) ([]entity.Comment, error)
}
