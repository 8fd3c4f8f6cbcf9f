// @title Ergotrack API
// @description API for occupational-therapy goal tracking dashboard
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"

	"github.com/limbo/ergotrack/internal/api"
	"github.com/limbo/ergotrack/internal/repository"
	"github.com/limbo/ergotrack/internal/service"
	"github.com/limbo/ergotrack/pkg/cleanup"
	"github.com/limbo/ergotrack/pkg/config"
	jwtservice "github.com/limbo/ergotrack/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()

	var (
		therapistsRepo repository.TherapistsRepositoryI
		patientsRepo   repository.PatientsRepositoryI
		goalsRepo      repository.GoalsRepositoryI
		commentsRepo   repository.CommentsRepositoryI
	)
	if cfg.GetStringOrDefault("STORAGE", "postgres") == "memory" {
		memTherapists := repository.NewMemoryTherapistsRepo()
		memPatients := repository.NewMemoryPatientsRepo()
		memGoals := repository.NewMemoryGoalsRepo()
		if err := repository.SeedDemoData(memTherapists, memPatients, memGoals); err != nil {
			log.Fatal("seeding demo data error: " + err.Error())
		}
		therapistsRepo = memTherapists
		patientsRepo = memPatients
		goalsRepo = memGoals
		commentsRepo = repository.NewMemoryCommentsRepo()
	} else {
		dbCfg := repository.PGCfg{
			Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
			Username: cfg.GetString("POSTGRES_USER"),
			Password: cfg.GetString("POSTGRES_PASSWORD"),
			DB:       cfg.GetString("POSTGRES_DB"),
		}
		therapistsRepo = repository.NewTherapistsRepo(&dbCfg)
		patientsRepo = repository.NewPatientsRepo(&dbCfg)
		goalsRepo = repository.NewGoalsRepo(&dbCfg)
		commentsRepo = repository.NewCommentsRepo(&dbCfg)
	}

	serv := api.New(&api.ServicesList{
		TherapistService: service.NewTherapistsService(therapistsRepo),
		PatientsService:  service.NewPatientsService(patientsRepo),
		GoalsService:     service.NewGoalsService(goalsRepo, patientsRepo),
		CommentsService:  service.NewCommentsService(commentsRepo, patientsRepo),
		JwtService:       jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	err := serv.Run(cfg.GetStringOrDefault("API_ADDRESS", ":8080"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
