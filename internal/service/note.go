package service

import (
	"context"

	"sainath-backend/internal/access"
	"sainath-backend/internal/domain"
	"sainath-backend/internal/realtime"
	"sainath-backend/internal/repository"
)

type noteService struct {
	noteRepo  repository.NoteRepository
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
	hub       *realtime.Hub
}

func NewNoteService(noteRepo repository.NoteRepository, eventRepo repository.EventRepository, userRepo repository.UserRepository, hub *realtime.Hub) NoteService {
	return &noteService{noteRepo: noteRepo, eventRepo: eventRepo, userRepo: userRepo, hub: hub}
}

func (s *noteService) AddNote(ctx context.Context, actorID, eventID, content string, imageURLs []string) (*domain.Note, error) {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if content == "" && len(imageURLs) == 0 {
		return nil, &domain.ValidationError{Field: "content", Reason: "required"}
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	note := &domain.Note{
		MemberID:  actor.ID,
		EventID:   eventID,
		Content:   content,
		ImageURLs: imageURLs,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	s.hub.Publish(realtime.Change{Collection: "notes", Action: realtime.ActionCreated, RecordID: note.ID})
	return note, nil
}

func (s *noteService) EditNote(ctx context.Context, actorID, noteID, newContent string, newImageURLs []string) (*domain.Note, error) {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if !access.CanModifyNote(actor, note) {
		return nil, domain.ErrPermissionDenied
	}
	if newContent == "" && len(newImageURLs) == 0 {
		return nil, &domain.ValidationError{Field: "content", Reason: "required"}
	}

	note.Content = newContent
	note.ImageURLs = newImageURLs
	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}
	s.hub.Publish(realtime.Change{Collection: "notes", Action: realtime.ActionUpdated, RecordID: note.ID})
	return note, nil
}

func (s *noteService) DeleteNote(ctx context.Context, actorID, noteID string) error {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return err
	}
	if !access.CanModifyNote(actor, note) {
		return domain.ErrPermissionDenied
	}
	if err := s.noteRepo.Delete(ctx, noteID); err != nil {
		return err
	}
	s.hub.Publish(realtime.Change{Collection: "notes", Action: realtime.ActionDeleted, RecordID: noteID})
	return nil
}

// ListNotes: the host reads every note in the event, members only
// their own.
func (s *noteService) ListNotes(ctx context.Context, actorID, eventID string) ([]domain.Note, error) {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if actor.IsHost() {
		return s.noteRepo.ListByEvent(ctx, eventID)
	}
	return s.noteRepo.ListByMember(ctx, actor.ID, eventID)
}
