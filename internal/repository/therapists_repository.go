package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/ergotrack/internal/error_values"
	"github.com/limbo/ergotrack/pkg/cleanup"
	"github.com/limbo/ergotrack/pkg/entity"
)

type TherapistsRepository struct {
	conn PgConnection
}

func NewTherapistsRepo(cfg DBConfig) *TherapistsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for therapistsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for therapistsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &TherapistsRepository{
		conn: pool,
	}
}

func NewTherapistsRepoWithConn(conn PgConnection) *TherapistsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for therapistsRepo: " + err.Error())
	}
	return &TherapistsRepository{
		conn: conn,
	}
}

func (tr *TherapistsRepository) Create(ctx context.Context, therapist *entity.Therapist) error {
	_, err := tr.conn.Exec(ctx, `INSERT INTO therapists (name, password_hash) VALUES ($1, $2);`,
		therapist.Name,
		therapist.PasswordHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return errorvalues.ErrTherapistExists
			}
		}
		return errors.New("creating therapist db error: " + err.Error())
	}
	return nil
}

func (tr *TherapistsRepository) FindByName(ctx context.Context, name string) (*entity.Therapist, error) {
	var therapist entity.Therapist
	therapist.Name = name
	row := tr.conn.QueryRow(ctx, `SELECT id, password_hash FROM therapists WHERE name = $1;`, name)
	if err := row.Scan(&therapist.ID, &therapist.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrTherapistNotFound
		}
		return nil, errors.New("getting therapist by name error: " + err.Error())
	}
	return &therapist, nil
}

func (tr *TherapistsRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Therapist, error) {
	var therapist entity.Therapist
	therapist.ID = id
	row := tr.conn.QueryRow(ctx, `SELECT name, password_hash FROM therapists WHERE id = $1;`, id)
	if err := row.Scan(&therapist.Name, &therapist.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrTherapistNotFound
		}
		return nil, errors.New("getting therapist by id error: " + err.Error())
	}
	return &therapist, nil
}
