package entity

import (
	"time"

	"github.com/google/uuid"
)

type GoalKind string

const (
	GoalKindPrimary   GoalKind = "primary"
	GoalKindSecondary GoalKind = "secondary"
)

type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "active"
	PatientStatusArchived PatientStatus = "archived"
)

type CommentKind string

const (
	CommentKindNote     CommentKind = "note"
	CommentKindAbsence  CommentKind = "absence"
	CommentKindProgress CommentKind = "progress"
)

type Therapist struct {
	ID           uuid.UUID
	Name         string
	PasswordHash string
}

type Patient struct {
	ID         uuid.UUID     `json:"id"`
	Name       string        `json:"name"`
	Age        int           `json:"age"`
	Points     int           `json:"points"`
	Status     PatientStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	ArchivedAt *time.Time    `json:"archived_at,omitempty"`
}

// Goal is either a primary therapeutic objective or a point-valued
// secondary step belonging to one. ParentID is uuid.Nil on primaries.
// Points and Completed on a primary are derived from its secondaries;
// the goals package recomputes them on every grouping.
type Goal struct {
	ID          uuid.UUID  `json:"id"`
	PatientID   uuid.UUID  `json:"patient_id"`
	ParentID    uuid.UUID  `json:"parent_id"`
	Kind        GoalKind   `json:"kind"`
	Text        string     `json:"text"`
	Points      int        `json:"points"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// PrimaryGoalGroup pairs a primary goal (with recomputed Points and
// Completed) with its secondaries.
type PrimaryGoalGroup struct {
	Primary        Goal    `json:"primary"`
	Secondaries    []Goal  `json:"secondaries"`
	TotalPoints    int     `json:"total_points"`
	CompletedCount int     `json:"completed_count"`
	Progress       float64 `json:"progress"`
}

type PatientGoalStats struct {
	PatientID               uuid.UUID `json:"patient_id"`
	TotalPrimaryGoals       int       `json:"total_primary_goals"`
	CompletedPrimaryGoals   int       `json:"completed_primary_goals"`
	TotalSecondaryGoals     int       `json:"total_secondary_goals"`
	CompletedSecondaryGoals int       `json:"completed_secondary_goals"`
	TotalPoints             int       `json:"total_points"`
	EarnedPoints            int       `json:"earned_points"`
	OverallProgress         float64   `json:"overall_progress"`
}

// DayProgress is one calendar day's completion aggregate for a patient.
// CompletionRate is an integer percentage, 0 when TotalGoals is 0.
type DayProgress struct {
	Date           time.Time `json:"date"`
	DayName        string    `json:"day_name"`
	CompletedGoals int       `json:"completed_goals"`
	TotalGoals     int       `json:"total_goals"`
	PointsEarned   int       `json:"points_earned"`
	PointsPossible int       `json:"points_possible"`
	CompletionRate int       `json:"completion_rate"`
}

// WeekProgress holds exactly seven consecutive days, Monday through Sunday.
type WeekProgress struct {
	WeekStart         time.Time     `json:"week_start"`
	WeekEnd           time.Time     `json:"week_end"`
	Days              []DayProgress `json:"days"`
	TotalPoints       int           `json:"total_points"`
	AverageCompletion int           `json:"average_completion"`
	BestDay           DayProgress   `json:"best_day"`
}

type Comment struct {
	ID          uuid.UUID   `json:"id"`
	PatientID   uuid.UUID   `json:"patient_id"`
	TherapistID uuid.UUID   `json:"therapist_id"`
	Kind        CommentKind `json:"kind"`
	Text        string      `json:"text"`
	CreatedAt   time.Time   `json:"created_at"`
}
