package service

import (
	"context"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/ergotrack/internal/error_values"
	"github.com/limbo/ergotrack/internal/repository"
	"github.com/limbo/ergotrack/pkg/entity"
	"golang.org/x/crypto/bcrypt"
)

type TherapistsService struct {
	repo repository.TherapistsRepositoryI
}

func NewTherapistsService(therapistsRepo repository.TherapistsRepositoryI) *TherapistsService {
	if therapistsRepo == nil {
		log.Fatal("provided nil therapistsRepo")
	}
	return &TherapistsService{
		repo: therapistsRepo,
	}
}

func (ts *TherapistsService) Register(ctx context.Context, req *RegisterRequest) (*entity.Therapist, error) {
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
	passwordHash, err := Hash(req.Password)
	if err != nil {
		return nil, errors.New("hashing password error: " + err.Error())
	}
	err = ts.repo.Create(ctx, &entity.Therapist{
		Name:         req.Name,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrTherapistExists) {
			return nil, err
		}
		return nil, errors.New("repository creating error: " + err.Error())
	}
	therapist, err := ts.repo.FindByName(ctx, req.Name)
	if err != nil {
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return therapist, nil
}

func (ts *TherapistsService) Login(ctx context.Context, name, password string) (*entity.Therapist, error) {
	therapist, err := ts.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, errorvalues.ErrTherapistNotFound) {
			return nil, err
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	if err = bcrypt.CompareHashAndPassword([]byte(therapist.PasswordHash), []byte(password)); err != nil {
		return nil, errorvalues.ErrWrongCredentials
	}
	return therapist, nil
}

func (ts *TherapistsService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Therapist, error) {
	therapist, err := ts.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrTherapistNotFound) {
			return nil, err
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return therapist, nil
}

func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
