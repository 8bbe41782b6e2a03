package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"sainath-backend/internal/domain"
	"sainath-backend/internal/repository"

	"github.com/google/uuid"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedOn = time.Now().UTC().Format(time.RFC3339)
	query := `INSERT INTO events (id, name, year, image_url, created_on) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.Name, e.Year, e.ImageURL, e.CreatedOn)
	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	e := &domain.Event{}
	var createdOn time.Time
	query := `SELECT id, name, year, COALESCE(image_url, ''), created_on FROM events WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Name, &e.Year, &e.ImageURL, &createdOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	e.CreatedOn = createdOn.UTC().Format(time.RFC3339)
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]domain.Event, error) {
	query := `SELECT id, name, year, COALESCE(image_url, ''), created_on FROM events ORDER BY year DESC, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		var createdOn time.Time
		if err := rows.Scan(&e.ID, &e.Name, &e.Year, &e.ImageURL, &createdOn); err != nil {
			return nil, err
		}
		e.CreatedOn = createdOn.UTC().Format(time.RFC3339)
		events = append(events, e)
	}
	return events, rows.Err()
}
