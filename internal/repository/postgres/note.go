package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"sainath-backend/internal/domain"
	"sainath-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type noteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) repository.NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, n *domain.Note) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.DateTime = time.Now().UTC().Format(time.RFC3339)
	query := `INSERT INTO notes (id, member_id, event_id, content, image_urls, date_time) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, n.ID, n.MemberID, n.EventID, n.Content, pq.Array(n.ImageURLs), n.DateTime)
	return err
}

func (r *noteRepository) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	n := &domain.Note{}
	var dateTime time.Time
	query := `SELECT id, member_id, event_id, content, image_urls, date_time FROM notes WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&n.ID, &n.MemberID, &n.EventID, &n.Content, pq.Array(&n.ImageURLs), &dateTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	n.DateTime = dateTime.UTC().Format(time.RFC3339)
	return n, nil
}

func (r *noteRepository) Update(ctx context.Context, n *domain.Note) error {
	n.DateTime = time.Now().UTC().Format(time.RFC3339)
	query := `UPDATE notes SET content=$1, image_urls=$2, date_time=$3 WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, n.Content, pq.Array(n.ImageURLs), n.DateTime, n.ID)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *noteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *noteRepository) ListByMember(ctx context.Context, memberID, eventID string) ([]domain.Note, error) {
	query := `SELECT id, member_id, event_id, content, image_urls, date_time FROM notes WHERE member_id = $1 AND event_id = $2 ORDER BY date_time DESC`
	return r.list(ctx, query, memberID, eventID)
}

func (r *noteRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Note, error) {
	query := `SELECT id, member_id, event_id, content, image_urls, date_time FROM notes WHERE event_id = $1 ORDER BY date_time DESC`
	return r.list(ctx, query, eventID)
}

func (r *noteRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var n domain.Note
		var dateTime time.Time
		if err := rows.Scan(&n.ID, &n.MemberID, &n.EventID, &n.Content, pq.Array(&n.ImageURLs), &dateTime); err != nil {
			return nil, err
		}
		n.DateTime = dateTime.UTC().Format(time.RFC3339)
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
