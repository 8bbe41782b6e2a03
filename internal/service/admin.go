package service

import (
	"context"

	"sainath-backend/internal/access"
	"sainath-backend/internal/domain"
	"sainath-backend/internal/logger"
	"sainath-backend/internal/realtime"
	"sainath-backend/internal/repository"
)

type adminService struct {
	userRepo repository.UserRepository
	emails   EmailService
	hub      *realtime.Hub
}

func NewAdminService(userRepo repository.UserRepository, emails EmailService, hub *realtime.Hub) AdminService {
	return &adminService{userRepo: userRepo, emails: emails, hub: hub}
}

func (s *adminService) ListPendingMembers(ctx context.Context, actorID string) ([]domain.User, error) {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if !access.CanApproveMembers(actor) {
		return nil, domain.ErrPermissionDenied
	}
	return s.userRepo.ListByStatus(ctx, domain.UserStatusPending)
}

// ApproveMember flips a pending account to approved. Approving an
// already approved member is a no-op rather than an error.
func (s *adminService) ApproveMember(ctx context.Context, actorID, memberID string) error {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}
	if !access.CanApproveMembers(actor) {
		return domain.ErrPermissionDenied
	}
	member, err := s.userRepo.GetByID(ctx, memberID)
	if err != nil {
		return err
	}
	if member.IsApproved() {
		return nil
	}

	member.Status = domain.UserStatusApproved
	if err := s.userRepo.Update(ctx, member); err != nil {
		return err
	}
	logger.Info("member approved", "member_id", memberID, "host_id", actor.ID)

	if err := s.emails.SendApprovalNotification(ctx, member.Email, member.Name); err != nil {
		logger.Warn("approval notification failed", "member_id", memberID, "error", err)
	}
	s.hub.Publish(realtime.Change{Collection: "users", Action: realtime.ActionUpdated, RecordID: memberID})
	return nil
}

func (s *adminService) ListMembers(ctx context.Context, actorID string) ([]domain.User, error) {
	if _, err := fetchActor(ctx, s.userRepo, actorID); err != nil {
		return nil, err
	}
	return s.userRepo.ListMembers(ctx)
}
