package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/ergotrack/internal/error_values"
	"github.com/limbo/ergotrack/internal/service"
	"github.com/limbo/ergotrack/pkg/entity"
	"github.com/limbo/ergotrack/pkg/httputil"
)

type AddCommentRequest struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type GetCommentsResponse struct {
	PatientID string           `json:"patient_id"`
	Comments  []entity.Comment `json:"comments"`
}

func (s *Server) AddComment(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	therapistID, err := GetTherapistIDFromContext(r)
	if err != nil {
		logger.Error("add comment error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	patientID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("add comment error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid patient id in path value", nil)
		return
	}
	var req AddCommentRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("add comment error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	comment, err := s.commentsService.AddComment(ctx, therapistID, patientID, &service.AddCommentRequest{
		Kind: req.Kind,
		Text: req.Text,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrPatientNotFound):
			logger.Error("add comment error: unexist patient")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "patient doesn't exist", nil)
		case isValidationError(err):
			logger.Error("add comment error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid comment fields", err)
		default:
			logger.Error("add comment error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while adding comment", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, comment)
	logger.Info("comment added")
}

func (s *Server) GetPatientComments(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	patientID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get comments error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid patient id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	comments, err := s.commentsService.GetPatientComments(ctx, patientID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrPatientNotFound) {
			logger.Error("get comments error: unexist patient")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "patient doesn't exist", nil)
			return
		}
		logger.Error("get comments error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting comments", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetCommentsResponse{
		PatientID: patientID.String(),
		Comments:  comments,
	})
	logger.Info("comments provided")
}
