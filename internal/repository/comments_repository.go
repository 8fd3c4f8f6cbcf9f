package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/ergotrack/internal/error_values"
	"github.com/limbo/ergotrack/pkg/cleanup"
	"github.com/limbo/ergotrack/pkg/entity"
)

type CommentsRepository struct {
	conn PgConnection
}

func NewCommentsRepo(cfg DBConfig) *CommentsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for commentsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for commentsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &CommentsRepository{
		conn: pool,
	}
}

func NewCommentsRepoWithConn(conn PgConnection) *CommentsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for commentsRepo: " + err.Error())
	}
	return &CommentsRepository{
		conn: conn,
	}
}

func (cr *CommentsRepository) Create(ctx context.Context, comment *entity.Comment) (uuid.UUID, error) {
	var id uuid.UUID
	row := cr.conn.QueryRow(ctx, `INSERT INTO comments (patient_id, therapist_id, kind, text) VALUES ($1, $2, $3, $4) RETURNING id;`,
		comment.PatientID,
		comment.TherapistID,
		comment.Kind,
		comment.Text,
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
		return uuid.UUID{}, errors.New("creating comment db error: " + err.Error())
	}
	return id, nil
}

func (cr *CommentsRepository) GetByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Comment, error) {
	comments := make([]entity.Comment, 0)
	rows, err := cr.conn.Query(ctx, `SELECT id, patient_id, therapist_id, kind, text, created_at
		FROM comments WHERE patient_id = $1 ORDER BY created_at DESC;`, patientID)
	if err != nil {
		return nil, errors.New("getting comments by patient id error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		c := entity.Comment{}
		err = rows.Scan(&c.ID, &c.PatientID, &c.TherapistID, &c.Kind, &c.Text, &c.CreatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling comment error: " + err.Error())
		}
		comments = append(comments, c)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return comments, nil
}
