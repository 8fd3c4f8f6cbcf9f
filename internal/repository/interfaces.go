package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/ergotrack/pkg/entity"
)

type TherapistsRepositoryI interface {
	// Creates new therapist in database
	Create(ctx context.Context, therapist *entity.Therapist) error
	// Looks up therapist by name. Can be used for login
	FindByName(ctx context.Context, name string) (*entity.Therapist, error)
	// Looks up therapist by id. Can be used for authorization middleware
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Therapist, error)
}

type ListPatientsOpts struct {
	Limit  int
	Offset int
	Search string
	Status entity.PatientStatus
}

type PatientsRepositoryI interface {
	// Creates new patient. In patient only Name and Age are necessary
	Create(ctx context.Context, patient *entity.Patient) (uuid.UUID, error)
	// Searches patient with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error)
	// Lists patients filtered by opts. Empty Search/Status mean no filter
	List(ctx context.Context, opts ListPatientsOpts) ([]*entity.Patient, error)
	// Switches patient status; archivedAt is nil when restoring
	SetStatus(ctx context.Context, id uuid.UUID, status entity.PatientStatus, archivedAt *time.Time) error
	// Adjusts patient's gamification points by delta (may be negative)
	AddPoints(ctx context.Context, id uuid.UUID, delta int) error
}

type GoalsRepositoryI interface {
	// Creates new goal. Kind, Text, PatientID and for secondaries
	// ParentID, Points are necessary
	Create(ctx context.Context, goal *entity.Goal) (uuid.UUID, error)
	// Searches goal with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)
	// Lists a patient's full goal set, creation order
	GetByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Goal, error)
	// Persists a goal's completion flag and stamp
	UpdateCompletion(ctx context.Context, id uuid.UUID, completed bool, completedAt *time.Time) error
}

type CommentsRepositoryI interface {
	// Creates new comment on patient
	Create(ctx context.Context, comment *entity.Comment) (uuid.UUID, error)
	// Lists patient's comments, newest first
	GetByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Comment, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
