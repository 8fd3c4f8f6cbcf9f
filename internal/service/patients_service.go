package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/ergotrack/internal/error_values"
	"github.com/limbo/ergotrack/internal/repository"
	"github.com/limbo/ergotrack/pkg/entity"
)

type PatientsService struct {
	repo repository.PatientsRepositoryI
}

func NewPatientsService(patientsRepo repository.PatientsRepositoryI) *PatientsService {
	if patientsRepo == nil {
		log.Fatal("provided nil patientsRepo")
	}
	return &PatientsService{
		repo: patientsRepo,
	}
}

func (ps *PatientsService) CreatePatient(ctx context.Context, req *CreatePatientRequest) (*entity.Patient, error) {
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
	id, err := ps.repo.Create(ctx, &entity.Patient{
		Name:   req.Name,
		Age:    req.Age,
		Status: entity.PatientStatusActive,
	})
	if err != nil {
		return nil, errors.New("patients repository error: " + err.Error())
	}
	patient, err := ps.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("patients repository error: " + err.Error())
	}
	return patient, nil
}

func (ps *PatientsService) GetPatients(ctx context.Context, req *ListPatientsRequest) ([]*entity.Patient, error) {
	err := validate.Struct(*req)
	if err != nil {
		return nil, errors.New("validation error: " + err.Error())
	}
	patients, err := ps.repo.List(ctx, repository.ListPatientsOpts{
		Limit:  req.Pagination.Limit,
		Offset: req.Pagination.Offset,
		Search: req.Search,
		Status: entity.PatientStatus(req.Status),
	})
	if err != nil {
		return nil, errors.New("patients repository error: " + err.Error())
	}
	return patients, nil
}

func (ps *PatientsService) GetPatient(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	patient, err := ps.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrPatientNotFound) {
			return nil, err
		}
		return nil, errors.New("patients repository error: " + err.Error())
	}
	return patient, nil
}

func (ps *PatientsService) ArchivePatient(ctx context.Context, id uuid.UUID) error {
	patient, err := ps.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrPatientNotFound) {
			return err
		}
		return errors.New("patients repository error: " + err.Error())
	}
	if patient.Status == entity.PatientStatusArchived {
		return errorvalues.ErrPatientArchived
	}
	now := time.Now()
	err = ps.repo.SetStatus(ctx, id, entity.PatientStatusArchived, &now)
	if err != nil {
		if errors.Is(err, errorvalues.ErrPatientNotFound) {
			return err
		}
		return errors.New("patients repository error: " + err.Error())
	}
	return nil
}
