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

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedOn = time.Now().UTC().Format(time.RFC3339)
	query := `INSERT INTO users (id, name, email, password_hash, role, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.Status, u.CreatedOn)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.scanOne(ctx, `SELECT id, name, email, password_hash, role, status, created_on FROM users WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanOne(ctx, `SELECT id, name, email, password_hash, role, status, created_on FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *userRepository) scanOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	u := &domain.User{}
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &createdOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.UTC().Format(time.RFC3339)
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET name=$1, email=$2, password_hash=$3, role=$4, status=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, u.Name, u.Email, u.PasswordHash, u.Role, u.Status, u.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) ListByStatus(ctx context.Context, status domain.UserStatus) ([]domain.User, error) {
	query := `SELECT id, name, email, password_hash, role, status, created_on FROM users WHERE status = $1 ORDER BY created_on`
	return r.list(ctx, query, status)
}

func (r *userRepository) ListMembers(ctx context.Context) ([]domain.User, error) {
	query := `SELECT id, name, email, password_hash, role, status, created_on FROM users WHERE role = $1 ORDER BY name`
	return r.list(ctx, query, domain.RoleMember)
}

func (r *userRepository) GetHost(ctx context.Context) (*domain.User, error) {
	return r.scanOne(ctx, `SELECT id, name, email, password_hash, role, status, created_on FROM users WHERE role = $1 LIMIT 1`, domain.RoleHost)
}

func (r *userRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		var createdOn time.Time
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &createdOn); err != nil {
			return nil, err
		}
		u.CreatedOn = createdOn.UTC().Format(time.RFC3339)
		users = append(users, u)
	}
	return users, rows.Err()
}
