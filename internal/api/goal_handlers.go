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
	"github.com/limbo/ergotrack/internal/goals"
	"github.com/limbo/ergotrack/internal/service"
	"github.com/limbo/ergotrack/pkg/entity"
	"github.com/limbo/ergotrack/pkg/httputil"
)

type CreateGoalRequest struct {
	PatientID string `json:"patient_id"`
	Kind      string `json:"kind"`
	Text      string `json:"text"`
	ParentID  string `json:"parent_id,omitempty"`
	Points    int    `json:"points,omitempty"`
}

type WeekDayView struct {
	entity.DayProgress
	Color  string `json:"color"`
	Status string `json:"status"`
}

type WeekProgressResponse struct {
	WeekStart         time.Time     `json:"week_start"`
	WeekEnd           time.Time     `json:"week_end"`
	Days              []WeekDayView `json:"days"`
	TotalPoints       int           `json:"total_points"`
	AverageCompletion int           `json:"average_completion"`
	BestDay           WeekDayView   `json:"best_day"`
}

func (s *Server) CreateGoal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req CreateGoalRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create goal error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		logger.Error("create goal error: invalid patient id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid patient id", nil)
		return
	}
	serviceReq := service.CreateGoalRequest{
		PatientID: patientID,
		Kind:      req.Kind,
		Text:      req.Text,
		Points:    req.Points,
	}
	if req.ParentID != "" {
		parentID, err := uuid.Parse(req.ParentID)
		if err != nil {
			logger.Error("create goal error: invalid parent id")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid parent id", nil)
			return
		}
		serviceReq.ParentID = parentID
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	goal, err := s.goalsService.CreateGoal(ctx, &serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrPatientNotFound):
			logger.Error("create goal error: unexist patient")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "couldn't create goal: patient doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrPatientArchived):
			logger.Error("create goal error: archived patient")
			httputil.WriteErrorResponse(w, http.StatusConflict, "couldn't create goal: patient is archived", nil)
		case errors.Is(err, errorvalues.ErrParentNotFound):
			logger.Error("create goal error: unexist parent goal")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "couldn't create goal: parent primary goal doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrCrossPatientParent):
			logger.Error("create goal error: parent of another patient")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "couldn't create goal: parent goal belongs to another patient", nil)
		case errors.Is(err, errorvalues.ErrInvalidPrimaryGoal):
			logger.Error("create goal error: primary with points or parent")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "couldn't create goal: primary goals cannot carry points or a parent", nil)
		case isValidationError(err):
			logger.Error("create goal error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid goal fields", err)
		default:
			logger.Error("create goal error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating goal", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, goal)
	logger.Info("goal created")
}

func (s *Server) GetPatientGoals(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	patientID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get patient goals error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid patient id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	view, err := s.goalsService.GetPatientGoals(ctx, patientID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrPatientNotFound) {
			logger.Error("get patient goals error: unexist patient")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "patient doesn't exist", nil)
			return
		}
		logger.Error("get patient goals error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting goals", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, view)
	logger.Info("patient goals provided")
}

func (s *Server) ToggleGoal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	goalID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("toggle goal error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid goal id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	goal, err := s.goalsService.ToggleGoal(ctx, goalID)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrGoalNotFound):
			logger.Error("toggle goal error: unexist goal")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "goal doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrNotSecondaryGoal):
			logger.Error("toggle goal error: not a secondary goal")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "only secondary goals can be toggled", nil)
		case errors.Is(err, errorvalues.ErrPatientArchived):
			logger.Error("toggle goal error: archived patient")
			httputil.WriteErrorResponse(w, http.StatusConflict, "patient is archived", nil)
		default:
			logger.Error("toggle goal error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while toggling goal", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, goal)
	logger.Info("goal toggled")
}

func (s *Server) GetPatientStats(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	patientID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get patient stats error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid patient id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	stats, err := s.goalsService.GetPatientStats(ctx, patientID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrPatientNotFound) {
			logger.Error("get patient stats error: unexist patient")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "patient doesn't exist", nil)
			return
		}
		logger.Error("get patient stats error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting stats", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, stats)
	logger.Info("patient stats provided")
}

func (s *Server) GetWeekProgress(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	patientID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get week progress error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid patient id in path value", nil)
		return
	}
	ref := time.Now()
	if date := r.URL.Query().Get("date"); date != "" {
		ref, err = time.Parse("2006-01-02", date)
		if err != nil {
			logger.Error("get week progress error: invalid date query param")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", nil)
			return
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	week, err := s.goalsService.GetWeekProgress(ctx, patientID, ref)
	if err != nil {
		if errors.Is(err, errorvalues.ErrPatientNotFound) {
			logger.Error("get week progress error: unexist patient")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "patient doesn't exist", nil)
			return
		}
		logger.Error("get week progress error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting week progress", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, weekProgressResponse(week))
	logger.Info("week progress provided")
}

func weekProgressResponse(week *entity.WeekProgress) WeekProgressResponse {
	resp := WeekProgressResponse{
		WeekStart:         week.WeekStart,
		WeekEnd:           week.WeekEnd,
		Days:              make([]WeekDayView, 0, len(week.Days)),
		TotalPoints:       week.TotalPoints,
		AverageCompletion: week.AverageCompletion,
		BestDay:           dayView(week.BestDay),
	}
	for _, d := range week.Days {
		resp.Days = append(resp.Days, dayView(d))
	}
	return resp
}

func dayView(d entity.DayProgress) WeekDayView {
	return WeekDayView{
		DayProgress: d,
		Color:       goals.CompletionColor(d.CompletionRate),
		Status:      goals.CompletionStatus(d.CompletionRate),
	}
}
