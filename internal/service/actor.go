package service

import (
	"context"
	"errors"

	"sainath-backend/internal/access"
	"sainath-backend/internal/domain"
	"sainath-backend/internal/repository"
)

// fetchActor resolves the acting user and applies the approval gate.
// Every workflow operation starts here; a pending or missing account
// never reaches domain logic.
func fetchActor(ctx context.Context, userRepo repository.UserRepository, actorID string) (*domain.User, error) {
	actor, err := userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrPermissionDenied
		}
		return nil, err
	}
	if err := access.RequireApproved(actor); err != nil {
		return nil, err
	}
	return actor, nil
}
