package postgres

import (
	"database/sql"

	"sainath-backend/internal/repository"

	_ "github.com/lib/pq"
)

// Store bundles all repositories backed by one database handle.
type Store struct {
	db       *sql.DB
	Users    repository.UserRepository
	Events   repository.EventRepository
	Items    repository.ItemRepository
	Orders   repository.OrderRepository
	Expenses repository.ExpenseRepository
	Notes    repository.NoteRepository
	Files    repository.FileRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:       db,
		Users:    NewUserRepository(db),
		Events:   NewEventRepository(db),
		Items:    NewItemRepository(db),
		Orders:   NewOrderRepository(db),
		Expenses: NewExpenseRepository(db),
		Notes:    NewNoteRepository(db),
		Files:    NewFileRepository(db),
	}
}
