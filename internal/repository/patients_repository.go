package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/ergotrack/internal/error_values"
	"github.com/limbo/ergotrack/pkg/cleanup"
	"github.com/limbo/ergotrack/pkg/entity"
)

type PatientsRepository struct {
	conn PgConnection
}

func NewPatientsRepo(cfg DBConfig) *PatientsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for patientsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for patientsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &PatientsRepository{
		conn: pool,
	}
}

func NewPatientsRepoWithConn(conn PgConnection) *PatientsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for patientsRepo: " + err.Error())
	}
	return &PatientsRepository{
		conn: conn,
	}
}

func (pr *PatientsRepository) Create(ctx context.Context, patient *entity.Patient) (uuid.UUID, error) {
	var id uuid.UUID
	row := pr.conn.QueryRow(ctx, `INSERT INTO patients (name, age) VALUES ($1, $2) RETURNING id;`,
		patient.Name,
		patient.Age,
	)
	if err := row.Scan(&id); err != nil {
		return uuid.UUID{}, errors.New("creating patient db error: " + err.Error())
	}
	return id, nil
}

func (pr *PatientsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	patient.ID = id
	row := pr.conn.QueryRow(ctx, `SELECT name, age, points, status, created_at, archived_at FROM patients WHERE id = $1;`, id)
	if err := row.Scan(&patient.Name, &patient.Age, &patient.Points, &patient.Status, &patient.CreatedAt, &patient.ArchivedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrPatientNotFound
		}
		return nil, errors.New("getting patient by id error: " + err.Error())
	}
	return &patient, nil
}

func (pr *PatientsRepository) List(ctx context.Context, opts ListPatientsOpts) ([]*entity.Patient, error) {
	patients := make([]*entity.Patient, 0)
	// Limit <= 0 means unbounded, LIMIT NULL in Postgres
	var limit any
	if opts.Limit > 0 {
		limit = opts.Limit
	}
	rows, err := pr.conn.Query(ctx, `SELECT id, name, age, points, status, created_at, archived_at
		FROM patients
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%') AND ($2 = '' OR status = $2)
		ORDER BY created_at, id LIMIT $3 OFFSET $4;`,
		opts.Search, string(opts.Status), limit, opts.Offset)
	if err != nil {
		return nil, errors.New("listing patients error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		p := entity.Patient{}
		err = rows.Scan(&p.ID, &p.Name, &p.Age, &p.Points, &p.Status, &p.CreatedAt, &p.ArchivedAt)
		if err != nil {
			return nil, errors.New("unmarshalling patient error: " + err.Error())
		}
		patients = append(patients, &p)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return patients, nil
}

func (pr *PatientsRepository) SetStatus(ctx context.Context, id uuid.UUID, status entity.PatientStatus, archivedAt *time.Time) error {
	ct, err := pr.conn.Exec(ctx, `UPDATE patients SET status = $1, archived_at = $2 WHERE id = $3;`,
		status, archivedAt, id,
	)
	if err != nil {
		return errors.New("error updating patient status: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrPatientNotFound
	}
	return nil
}

func (pr *PatientsRepository) AddPoints(ctx context.Context, id uuid.UUID, delta int) error {
	ct, err := pr.conn.Exec(ctx, `UPDATE patients SET points = points + $1 WHERE id = $2;`, delta, id)
	if err != nil {
		return errors.New("error updating patient points: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrPatientNotFound
	}
	return nil
}
