package errorvalues

import "errors"

var (
	ErrTherapistExists   = errors.New("such therapist already exists")
	ErrTherapistNotFound = errors.New("therapist doesn't exist")
	ErrWrongCredentials  = errors.New("wrong name or password")
	ErrInvalidToken      = errors.New("invalid token")

	ErrPatientNotFound = errors.New("patient doesn't exist")
	ErrPatientArchived = errors.New("patient is archived")

	ErrGoalNotFound       = errors.New("goal doesn't exist")
	ErrNotSecondaryGoal   = errors.New("goal is not a secondary goal")
	ErrInvalidPrimaryGoal = errors.New("primary goals cannot carry points or a parent")
	ErrParentNotFound     = errors.New("parent primary goal doesn't exist")
	ErrCrossPatientParent = errors.New("parent goal belongs to another patient")
)
