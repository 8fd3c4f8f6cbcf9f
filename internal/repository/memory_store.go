package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/ergotrack/internal/error_values"
	"github.com/limbo/ergotrack/pkg/entity"
)

// Mutex-guarded in-memory repositories. They back the prototype mode
// (STORAGE=memory, booted from seed fixtures) and the service tests.
// Cross-entity integrity (patient existence on goal/comment creation)
// is enforced at the service layer, so each repo stands alone.

type MemoryTherapistsRepo struct {
	mu         sync.RWMutex
	therapists map[uuid.UUID]*entity.Therapist
}

func NewMemoryTherapistsRepo() *MemoryTherapistsRepo {
	return &MemoryTherapistsRepo{
		therapists: make(map[uuid.UUID]*entity.Therapist),
	}
}

func (r *MemoryTherapistsRepo) Create(ctx context.Context, therapist *entity.Therapist) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.therapists {
		if t.Name == therapist.Name {
			return errorvalues.ErrTherapistExists
		}
	}
	stored := *therapist
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	r.therapists[stored.ID] = &stored
	return nil
}

func (r *MemoryTherapistsRepo) FindByName(ctx context.Context, name string) (*entity.Therapist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.therapists {
		if t.Name == name {
			found := *t
			return &found, nil
		}
	}
	return nil, errorvalues.ErrTherapistNotFound
}

func (r *MemoryTherapistsRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Therapist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, exists := r.therapists[id]
	if !exists {
		return nil, errorvalues.ErrTherapistNotFound
	}
	found := *t
	return &found, nil
}

type MemoryPatientsRepo struct {
	mu       sync.RWMutex
	patients map[uuid.UUID]*entity.Patient
}

func NewMemoryPatientsRepo() *MemoryPatientsRepo {
	return &MemoryPatientsRepo{
		patients: make(map[uuid.UUID]*entity.Patient),
	}
}

func (r *MemoryPatientsRepo) Create(ctx context.Context, patient *entity.Patient) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *patient
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.Status == "" {
		stored.Status = entity.PatientStatusActive
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.patients[stored.ID] = &stored
	return stored.ID, nil
}

func (r *MemoryPatientsRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, exists := r.patients[id]
	if !exists {
		return nil, errorvalues.ErrPatientNotFound
	}
	found := *p
	return &found, nil
}

func (r *MemoryPatientsRepo) List(ctx context.Context, opts ListPatientsOpts) ([]*entity.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]*entity.Patient, 0)
	for _, p := range r.patients {
		if opts.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(opts.Search)) {
			continue
		}
		if opts.Status != "" && p.Status != opts.Status {
			continue
		}
		found := *p
		matched = append(matched, &found)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID.String() < matched[j].ID.String()
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	if opts.Offset >= len(matched) {
		return []*entity.Patient{}, nil
	}
	matched = matched[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

func (r *MemoryPatientsRepo) SetStatus(ctx context.Context, id uuid.UUID, status entity.PatientStatus, archivedAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, exists := r.patients[id]
	if !exists {
		return errorvalues.ErrPatientNotFound
	}
	p.Status = status
	p.ArchivedAt = archivedAt
	return nil
}

func (r *MemoryPatientsRepo) AddPoints(ctx context.Context, id uuid.UUID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, exists := r.patients[id]
	if !exists {
		return errorvalues.ErrPatientNotFound
	}
	p.Points += delta
	return nil
}

type MemoryGoalsRepo struct {
	mu    sync.RWMutex
	goals map[uuid.UUID][]*entity.Goal // patientID -> goals, creation order
	index map[uuid.UUID]*entity.Goal
}

func NewMemoryGoalsRepo() *MemoryGoalsRepo {
	return &MemoryGoalsRepo{
		goals: make(map[uuid.UUID][]*entity.Goal),
		index: make(map[uuid.UUID]*entity.Goal),
	}
}

func (r *MemoryGoalsRepo) Create(ctx context.Context, goal *entity.Goal) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *goal
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.goals[stored.PatientID] = append(r.goals[stored.PatientID], &stored)
	r.index[stored.ID] = &stored
	return stored.ID, nil
}

func (r *MemoryGoalsRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, exists := r.index[id]
	if !exists {
		return nil, errorvalues.ErrGoalNotFound
	}
	found := *g
	return &found, nil
}

func (r *MemoryGoalsRepo) GetByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	gs := make([]entity.Goal, 0, len(r.goals[patientID]))
	for _, g := range r.goals[patientID] {
		gs = append(gs, *g)
	}
	return gs, nil
}

func (r *MemoryGoalsRepo) UpdateCompletion(ctx context.Context, id uuid.UUID, completed bool, completedAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, exists := r.index[id]
	if !exists {
		return errorvalues.ErrGoalNotFound
	}
	g.Completed = completed
	g.CompletedAt = completedAt
	return nil
}

type MemoryCommentsRepo struct {
	mu       sync.RWMutex
	comments map[uuid.UUID][]*entity.Comment // patientID -> comments
}

func NewMemoryCommentsRepo() *MemoryCommentsRepo {
	return &MemoryCommentsRepo{
		comments: make(map[uuid.UUID][]*entity.Comment),
	}
}

func (r *MemoryCommentsRepo) Create(ctx context.Context, comment *entity.Comment) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *comment
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.comments[stored.PatientID] = append(r.comments[stored.PatientID], &stored)
	return stored.ID, nil
}

func (r *MemoryCommentsRepo) GetByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	comments := make([]entity.Comment, 0, len(r.comments[patientID]))
	for _, c := range r.comments[patientID] {
		comments = append(comments, *c)
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}
