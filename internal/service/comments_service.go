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
)

type CommentsService struct {
	commentsRepo repository.CommentsRepositoryI
	patientsRepo repository.PatientsRepositoryI
}

func NewCommentsService(commentsRepo repository.CommentsRepositoryI, patientsRepo repository.PatientsRepositoryI) *CommentsService {
	if commentsRepo == nil || patientsRepo == nil {
		log.Fatal("provided nil repos to comments service")
	}
	return &CommentsService{
		commentsRepo: commentsRepo,
		patientsRepo: patientsRepo,
	}
}

func (cs *CommentsService) AddComment(ctx context.Context, therapistID, patientID uuid.UUID, req *AddCommentRequest) (*entity.Comment, error) {
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
	if _, err := cs.patientsRepo.GetByID(ctx, patientID); err != nil {
		if errors.Is(err, errorvalues.ErrPatientNotFound) {
			return nil, err
		}
		return nil, errors.New("patients repository error: " + err.Error())
	}
	comment := entity.Comment{
		PatientID:   patientID,
		TherapistID: therapistID,
		Kind:        entity.CommentKind(req.Kind),
		Text:        req.Text,
	}
	id, err := cs.commentsRepo.Create(ctx, &comment)
	if err != nil {
		if errors.Is(err, errorvalues.ErrPatientNotFound) {
			return nil, err
		}
		return nil, errors.New("comments repository error: " + err.Error())
	}
	comment.ID = id
	return &comment, nil
}

func (cs *CommentsService) GetPatientComments(ctx context.Context, patientID uuid.UUID) ([]entity.Comment, error) {
	if _, err := cs.patientsRepo.GetByID(ctx, patientID); err != nil {
		if errors.Is(err, errorvalues.ErrPatientNotFound) {
			return nil, err
		}
		return nil, errors.New("patients repository error: " + err.Error())
	}
	comments, err := cs.commentsRepo.GetByPatientID(ctx, patientID)
	if err != nil {
		return nil, errors.New("comments repository error: " + err.Error())
	}
	return comments, nil
}
