package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/limbo/ergotrack/internal/service"
)

type Server struct {
	mx               *chi.Mux
	therapistService service.TherapistServiceI
	patientsService  service.PatientsServiceI
	goalsService     service.GoalsServiceI
	commentsService  service.CommentsServiceI
	jwtService       JWTServiceI
}

type ServicesList struct {
	TherapistService service.TherapistServiceI
	PatientsService  service.PatientsServiceI
	GoalsService     service.GoalsServiceI
	CommentsService  service.CommentsServiceI
	JwtService       JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:               chi.NewMux(),
		therapistService: servicesOptions.TherapistService,
		patientsService:  servicesOptions.PatientsService,
		goalsService:     servicesOptions.GoalsService,
		commentsService:  servicesOptions.CommentsService,
		jwtService:       servicesOptions.JwtService,
	}
}

func (s *Server) Routes() *chi.Mux {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Get("/patients", s.GetPatients)
			r.Post("/patients", s.CreatePatient)
			r.Get("/patients/{id}", s.GetPatient)
			r.Post("/patients/{id}/archive", s.ArchivePatient)
			r.Get("/patients/{id}/goals", s.GetPatientGoals)
			r.Get("/patients/{id}/stats", s.GetPatientStats)
			r.Get("/patients/{id}/week", s.GetWeekProgress)
			r.Get("/patients/{id}/comments", s.GetPatientComments)
			r.Post("/patients/{id}/comments", s.AddComment)
			r.Post("/goals", s.CreateGoal)
			r.Post("/goals/{id}/toggle", s.ToggleGoal)
		})
	})
	return s.mx
}

func (s *Server) Run(addr string) error {
	return http.ListenAndServe(addr, s.Routes())
}
