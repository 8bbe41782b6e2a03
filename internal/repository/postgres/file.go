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

type fileRepository struct {
	db *sql.DB
}

func NewFileRepository(db *sql.DB) repository.FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(ctx context.Context, f *domain.StoredFile) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	f.UploadDate = time.Now().UTC().Format(time.RFC3339)
	query := `INSERT INTO stored_files (id, uploaded_by_id, name, file_path, upload_date) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, f.ID, f.UploadedByID, f.Name, f.FilePath, f.UploadDate)
	return err
}

func (r *fileRepository) GetByID(ctx context.Context, id string) (*domain.StoredFile, error) {
	f := &domain.StoredFile{}
	var uploadDate time.Time
	query := `SELECT id, uploaded_by_id, name, file_path, upload_date FROM stored_files WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&f.ID, &f.UploadedByID, &f.Name, &f.FilePath, &uploadDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	f.UploadDate = uploadDate.UTC().Format(time.RFC3339)
	return f, nil
}

func (r *fileRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stored_files WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *fileRepository) List(ctx context.Context) ([]domain.StoredFile, error) {
	query := `SELECT id, uploaded_by_id, name, file_path, upload_date FROM stored_files ORDER BY upload_date DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []domain.StoredFile
	for rows.Next() {
		var f domain.StoredFile
		var uploadDate time.Time
		if err := rows.Scan(&f.ID, &f.UploadedByID, &f.Name, &f.FilePath, &uploadDate); err != nil {
			return nil, err
		}
		f.UploadDate = uploadDate.UTC().Format(time.RFC3339)
		files = append(files, f)
	}
	return files, rows.Err()
}
