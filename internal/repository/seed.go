package repository

import (
	"context"
	"errors"
	"time"

	"github.com/limbo/ergotrack/pkg/entity"
	"golang.org/x/crypto/bcrypt"
)

// SeedDemoData loads the demo fixture set into the in-memory repos:
// one therapist (name "sarah_martinez", password "changeme"), a mix of
// active and archived patients and a small goal tree for the first one.
func SeedDemoData(therapists *MemoryTherapistsRepo, patients *MemoryPatientsRepo, goals *MemoryGoalsRepo) error {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("hashing demo password error: " + err.Error())
	}
	err = therapists.Create(ctx, &entity.Therapist{
		Name:         "sarah_martinez",
		PasswordHash: string(hash),
	})
	if err != nil {
		return err
	}

	createdAt := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	archivedAt := time.Date(2023, 6, 15, 10, 0, 0, 0, time.UTC)
	demoPatients := []entity.Patient{
		{Name: "Emma Johnson", Age: 8, Points: 245, Status: entity.PatientStatusActive, CreatedAt: createdAt},
		{Name: "Michael Chen", Age: 12, Points: 180, Status: entity.PatientStatusActive, CreatedAt: createdAt.Add(time.Minute)},
		{Name: "Sarah Williams", Age: 16, Points: 320, Status: entity.PatientStatusActive, CreatedAt: createdAt.Add(2 * time.Minute)},
		{Name: "Antoine Lefebvre", Age: 18, Points: 650, Status: entity.PatientStatusArchived, CreatedAt: createdAt.Add(3 * time.Minute), ArchivedAt: &archivedAt},
	}
	ids := make([]entity.Patient, 0, len(demoPatients))
	for _, p := range demoPatients {
		id, err := patients.Create(ctx, &p)
		if err != nil {
			return err
		}
		p.ID = id
		ids = append(ids, p)
	}

	emma := ids[0].ID
	doneAt := time.Date(2024, 1, 20, 14, 0, 0, 0, time.UTC)
	dressing := entity.Goal{PatientID: emma, Kind: entity.GoalKindPrimary, Text: "Improve dressing independence", CreatedAt: createdAt}
	dressingID, err := goals.Create(ctx, &dressing)
	if err != nil {
		return err
	}
	writing := entity.Goal{PatientID: emma, Kind: entity.GoalKindPrimary, Text: "Develop fine motor skills for writing", CreatedAt: createdAt}
	writingID, err := goals.Create(ctx, &writing)
	if err != nil {
		return err
	}
	secondaries := []entity.Goal{
		{PatientID: emma, ParentID: dressingID, Kind: entity.GoalKindSecondary, Text: "Button a shirt without help", Points: 10, Completed: true, CreatedAt: createdAt, CompletedAt: &doneAt},
		{PatientID: emma, ParentID: dressingID, Kind: entity.GoalKindSecondary, Text: "Tie shoelaces", Points: 15, CreatedAt: createdAt},
		{PatientID: emma, ParentID: dressingID, Kind: entity.GoalKindSecondary, Text: "Use a zipper", Points: 10, CreatedAt: createdAt},
		{PatientID: emma, ParentID: writingID, Kind: entity.GoalKindSecondary, Text: "Hold the pencil correctly", Points: 5, Completed: true, CreatedAt: createdAt, CompletedAt: &doneAt},
		{PatientID: emma, ParentID: writingID, Kind: entity.GoalKindSecondary, Text: "Trace straight lines", Points: 10, Completed: true, CreatedAt: createdAt, CompletedAt: &doneAt},
		{PatientID: emma, ParentID: writingID, Kind: entity.GoalKindSecondary, Text: "Write own first name", Points: 10, CreatedAt: createdAt},
	}
	for _, g := range secondaries {
		if _, err := goals.Create(ctx, &g); err != nil {
			return err
		}
	}
	// Michael has a primary with no secondaries yet
	balance := entity.Goal{PatientID: ids[1].ID, Kind: entity.GoalKindPrimary, Text: "Improve balance and coordination", CreatedAt: createdAt}
	if _, err := goals.Create(ctx, &balance); err != nil {
		return err
	}
	return nil
}
