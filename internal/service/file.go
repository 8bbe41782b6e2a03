package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"sainath-backend/internal/access"
	"sainath-backend/internal/domain"
	"sainath-backend/internal/logger"
	"sainath-backend/internal/repository"
	"sainath-backend/internal/storage"
)

type fileService struct {
	fileRepo repository.FileRepository
	userRepo repository.UserRepository
	blobs    storage.BlobStorage
}

func NewFileService(fileRepo repository.FileRepository, userRepo repository.UserRepository, blobs storage.BlobStorage) FileService {
	return &fileService{fileRepo: fileRepo, userRepo: userRepo, blobs: blobs}
}

// UploadFile streams the blob into storage under a fresh key, then
// records its metadata. The key keeps the original extension so
// content type can be inferred on download.
func (s *fileService) UploadFile(ctx context.Context, actorID, name string, content io.Reader) (*domain.StoredFile, error) {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." {
		return nil, &domain.ValidationError{Field: "name", Reason: "required"}
	}

	key := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(name))
	if _, err := s.blobs.Save(ctx, key, content); err != nil {
		return nil, err
	}

	file := &domain.StoredFile{
		UploadedByID: actor.ID,
		Name:         name,
		FilePath:     key,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		// Orphaned blob; best-effort cleanup, the cron job catches the rest.
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			logger.Warn("orphaned blob cleanup failed", "key", key, "error", delErr)
		}
		return nil, err
	}

	logger.Info("file uploaded", "file_id", file.ID, "name", name, "uploaded_by", actor.ID)
	return file, nil
}

func (s *fileService) OpenFile(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.blobs.Open(ctx, key)
}

func (s *fileService) ListFiles(ctx context.Context, actorID string) ([]domain.StoredFile, error) {
	if _, err := fetchActor(ctx, s.userRepo, actorID); err != nil {
		return nil, err
	}
	return s.fileRepo.List(ctx)
}

func (s *fileService) DeleteFile(ctx context.Context, actorID, fileID string) error {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}
	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return err
	}
	if !access.CanDeleteFile(actor, file) {
		return domain.ErrPermissionDenied
	}
	if err := s.fileRepo.Delete(ctx, fileID); err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, file.FilePath); err != nil {
		logger.Warn("blob delete failed", "file_id", fileID, "key", file.FilePath, "error", err)
	}
	logger.Info("file deleted", "file_id", fileID, "actor_id", actor.ID)
	return nil
}
