package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/ergotrack/internal/error_values"
	"github.com/limbo/ergotrack/pkg/cleanup"
	"github.com/limbo/ergotrack/pkg/entity"
)

type GoalsRepository struct {
	conn PgConnection
}

func NewGoalsRepo(cfg DBConfig) *GoalsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for goalsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for goalsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &GoalsRepository{
		conn: pool,
	}
}

func NewGoalsRepoWithConn(conn PgConnection) *GoalsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for goalsRepo: " + err.Error())
	}
	return &GoalsRepository{
		conn: conn,
	}
}

func (gr *GoalsRepository) Create(ctx context.Context, goal *entity.Goal) (uuid.UUID, error) {
	var parentID any
	if goal.ParentID != uuid.Nil {
		parentID = goal.ParentID
	}
	var id uuid.UUID
	row := gr.conn.QueryRow(ctx, `INSERT INTO goals (patient_id, parent_id, kind, text, points) VALUES ($1, $2, $3, $4, $5) RETURNING id;`,
		goal.PatientID,
		parentID,
		goal.Kind,
		goal.Text,
		goal.Points,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return uuid.UUID{}, errorvalues.ErrPatientNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating goal db error: " + err.Error())
	}
	return id, nil
}

func (gr *GoalsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	var goal entity.Goal
	goal.ID = id
	var parentID *uuid.UUID
	row := gr.conn.QueryRow(ctx, `SELECT patient_id, parent_id, kind, text, points, completed, created_at, completed_at FROM goals WHERE id = $1;`, id)
	if err := row.Scan(&goal.PatientID, &parentID, &goal.Kind, &goal.Text, &goal.Points, &goal.Completed, &goal.CreatedAt, &goal.CompletedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrGoalNotFound
		}
		return nil, errors.New("getting goal by id error: " + err.Error())
	}
	if parentID != nil {
		goal.ParentID = *parentID
	}
	return &goal, nil
}

func (gr *GoalsRepository) GetByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Goal, error) {
	gs := make([]entity.Goal, 0)
	rows, err := gr.conn.Query(ctx, `SELECT id, patient_id, parent_id, kind, text, points, completed, created_at, completed_at
		FROM goals WHERE patient_id = $1 ORDER BY created_at, id;`, patientID)
	if err != nil {
		return nil, errors.New("getting goals by patient id error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		g := entity.Goal{}
		var parentID *uuid.UUID
		err = rows.Scan(&g.ID, &g.PatientID, &parentID, &g.Kind, &g.Text, &g.Points, &g.Completed, &g.CreatedAt, &g.CompletedAt)
		if err != nil {
			return nil, errors.New("unmarshalling goal error: " + err.Error())
		}
		if parentID != nil {
			g.ParentID = *parentID
		}
		gs = append(gs, g)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return gs, nil
}

func (gr *GoalsRepository) UpdateCompletion(ctx context.Context, id uuid.UUID, completed bool, completedAt *time.Time) error {
	ct, err := gr.conn.Exec(ctx, `UPDATE goals SET completed = $1, completed_at = $2 WHERE id = $3;`,
		completed, completedAt, id,
	)
	if err != nil {
		return errors.New("error updating goal completion: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrGoalNotFound
	}
	return nil
}
