package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/ergotrack/internal/error_values"
	"github.com/limbo/ergotrack/internal/service"
	"github.com/limbo/ergotrack/pkg/entity"
	"github.com/limbo/ergotrack/pkg/httputil"
)

type CreatePatientRequest struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type GetPatientsResponse struct {
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
	Patients []*entity.Patient `json:"patients"`
}

func isValidationError(err error) bool {
	var fieldErr validator.FieldError
	return errors.As(err, &fieldErr)
}

func (s *Server) CreatePatient(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req CreatePatientRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create patient error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	patient, err := s.patientsService.CreatePatient(ctx, &service.CreatePatientRequest{
		Name: req.Name,
		Age:  req.Age,
	})
	if err != nil {
		if isValidationError(err) {
			logger.Error("create patient error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid patient fields", err)
			return
		}
		logger.Error("create patient error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating patient", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, patient)
	logger.Info("patient created")
}

func (s *Server) GetPatients(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 10
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	patients, err := s.patientsService.GetPatients(ctx, &service.ListPatientsRequest{
		Pagination: service.PaginationOpts{
			Limit:  limit,
			Offset: offset,
		},
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
	})
	if err != nil {
		logger.Error("getting patients list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting patients list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetPatientsResponse{
		Page:     page,
		Limit:    limit,
		Patients: patients,
	})
	logger.Info("patients provided")
}

func (s *Server) GetPatient(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get patient error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid patient id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	patient, err := s.patientsService.GetPatient(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrPatientNotFound) {
			logger.Error("get patient error: unexist patient")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "patient doesn't exist", nil)
			return
		}
		logger.Error("get patient error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting patient", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, patient)
	logger.Info("patient provided")
}

func (s *Server) ArchivePatient(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("archive patient error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid patient id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.patientsService.ArchivePatient(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrPatientNotFound):
			logger.Error("archive patient error: unexist patient")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "patient doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrPatientArchived):
			logger.Error("archive patient error: already archived")
			httputil.WriteErrorResponse(w, http.StatusConflict, "patient already archived", nil)
		default:
			logger.Error("archive patient error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while archiving patient", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"patient_id": id.String(), "status": entity.PatientStatusArchived})
	logger.Info("patient archived")
}
