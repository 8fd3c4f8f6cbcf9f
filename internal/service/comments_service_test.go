package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/ergotrack/internal/error_values"
	"github.com/limbo/ergotrack/internal/repository"
	"github.com/limbo/ergotrack/internal/service"
	"github.com/limbo/ergotrack/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testComment = entity.Comment{
	ID:          uuid.New(),
	PatientID:   patientID,
	TherapistID: therapistID,
	Kind:        entity.CommentKindNote,
	Text:        "Worked on buttoning today, good focus",
	CreatedAt:   createdAt,
}

type commentsRepoMock struct {
	state mockState
}

func (crmock *commentsRepoMock) Create(ctx context.Context, comment *entity.Comment) (uuid.UUID, error) {
	switch crmock.state {
	case statePatientNotFound:
		return uuid.UUID{}, errorvalues.ErrPatientNotFound
	case stateDBError:
		return uuid.UUID{}, errors.New("db error")
	default:
		return testComment.ID, nil
	}
}

func (crmock *commentsRepoMock) GetByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Comment, error) {
	switch crmock.state {
	case stateDBError:
		return nil, errors.New("db error")
	default:
		return []entity.Comment{testComment}, nil
	}
}

func TestAddComment(t *testing.T) {
	commentsMock := &commentsRepoMock{state: stateSuccess}
	patientsMock := &patientsRepoMock{state: stateSuccess}
	s := service.NewCommentsService(commentsMock, patientsMock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		comment, err := s.AddComment(ctx, therapistID, patientID, &service.AddCommentRequest{
			Kind: string(entity.CommentKindNote),
			Text: testComment.Text,
		})
		assert.NoError(t, err)
		assert.Equal(t, testComment.ID, comment.ID)
		assert.Equal(t, therapistID, comment.TherapistID)
	})
	t.Run("invalid kind", func(t *testing.T) {
		_, err := s.AddComment(ctx, therapistID, patientID, &service.AddCommentRequest{
			Kind: "reminder",
			Text: testComment.Text,
		})
		assert.Error(t, err)
	})
	t.Run("empty text", func(t *testing.T) {
		_, err := s.AddComment(ctx, therapistID, patientID, &service.AddCommentRequest{
			Kind: string(entity.CommentKindNote),
			Text: "",
		})
		assert.Error(t, err)
	})
	t.Run("patient not found", func(t *testing.T) {
		patientsMock.state = statePatientNotFound
		_, err := s.AddComment(ctx, therapistID, patientID, &service.AddCommentRequest{
			Kind: string(entity.CommentKindNote),
			Text: testComment.Text,
		})
		assert.ErrorIs(t, err, errorvalues.ErrPatientNotFound)
		patientsMock.state = stateSuccess
	})
	t.Run("db error", func(t *testing.T) {
		commentsMock.state = stateDBError
		_, err := s.AddComment(ctx, therapistID, patientID, &service.AddCommentRequest{
			Kind: string(entity.CommentKindNote),
			Text: testComment.Text,
		})
		assert.Error(t, err)
	})
}

func TestGetPatientComments(t *testing.T) {
	commentsMock := &commentsRepoMock{state: stateSuccess}
	patientsMock := &patientsRepoMock{state: stateSuccess}
	s := service.NewCommentsService(commentsMock, patientsMock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		comments, err := s.GetPatientComments(ctx, patientID)
		assert.NoError(t, err)
		assert.Equal(t, 1, len(comments))
		assert.Equal(t, testComment, comments[0])
	})
	t.Run("patient not found", func(t *testing.T) {
		patientsMock.state = statePatientNotFound
		_, err := s.GetPatientComments(ctx, patientID)
		assert.ErrorIs(t, err, errorvalues.ErrPatientNotFound)
	})
}

func TestCommentsServiceWithMemoryRepos(t *testing.T) {
	ctx := context.Background()
	patientsRepo := repository.NewMemoryPatientsRepo()
	s := service.NewCommentsService(repository.NewMemoryCommentsRepo(), patientsRepo)
	pid, err := patientsRepo.Create(ctx, &entity.Patient{Name: "Emma Johnson", Age: 8})
	require.NoError(t, err)
	texts := []string{"first session note", "missed the appointment", "big progress on shoelaces"}
	kinds := []string{"note", "absence", "progress"}
	for i := range texts {
		_, err := s.AddComment(ctx, therapistID, pid, &service.AddCommentRequest{
			Kind: kinds[i],
			Text: texts[i],
		})
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}
	comments, err := s.GetPatientComments(ctx, pid)
	require.NoError(t, err)
	require.Equal(t, 3, len(comments))
	// newest first
	for i := range comments {
		assert.Equal(t, texts[len(texts)-1-i], comments[i].Text)
		assert.Equal(t, entity.CommentKind(kinds[len(kinds)-1-i]), comments[i].Kind)
	}
}
