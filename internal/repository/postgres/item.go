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

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, i *domain.Item) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	i.CreatedOn = time.Now().UTC().Format(time.RFC3339)
	query := `INSERT INTO items (id, event_id, name, available_stock_kg, created_on) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, i.ID, i.EventID, i.Name, i.AvailableStockKg, i.CreatedOn)
	return err
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	i := &domain.Item{}
	var createdOn time.Time
	query := `SELECT id, event_id, name, available_stock_kg, created_on FROM items WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&i.ID, &i.EventID, &i.Name, &i.AvailableStockKg, &createdOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	i.CreatedOn = createdOn.UTC().Format(time.RFC3339)
	return i, nil
}

func (r *itemRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Item, error) {
	query := `SELECT id, event_id, name, available_stock_kg, created_on FROM items WHERE event_id = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var i domain.Item
		var createdOn time.Time
		if err := rows.Scan(&i.ID, &i.EventID, &i.Name, &i.AvailableStockKg, &createdOn); err != nil {
			return nil, err
		}
		i.CreatedOn = createdOn.UTC().Format(time.RFC3339)
		items = append(items, i)
	}
	return items, rows.Err()
}

func (r *itemRepository) IncreaseStock(ctx context.Context, itemID string, qtyKg float64) error {
	query := `UPDATE items SET available_stock_kg = available_stock_kg + $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, qtyKg, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *itemRepository) SetStock(ctx context.Context, itemID string, newQtyKg float64) error {
	query := `UPDATE items SET available_stock_kg = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, newQtyKg, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementStock applies the stock check and the subtraction as one
// conditional update, so two concurrent decrements can never both
// succeed against stock that only covers one of them.
func (r *itemRepository) DecrementStock(ctx context.Context, itemID string, qtyKg float64) error {
	query := `UPDATE items SET available_stock_kg = available_stock_kg - $1 WHERE id = $2 AND available_stock_kg >= $1`
	res, err := r.db.ExecContext(ctx, query, qtyKg, itemID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	// The condition failed: distinguish a missing item from short stock.
	item, err := r.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	return &domain.InsufficientStockError{
		ItemName:    item.Name,
		AvailableKg: item.AvailableStockKg,
		RequestedKg: qtyKg,
	}
}
