package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/srvtrack/internal/server/activity"
	"github.com/dmitrijs2005/srvtrack/internal/server/models"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/repomanager"
)

// GetServerNotes lists the live notes of a server, newest first.
func (s *Inventory) GetServerNotes(ctx context.Context, serverID int64) ([]*models.ServerNote, error) {
	if _, err := s.GetServer(ctx, serverID); err != nil {
		return nil, err
	}
	return s.repos().Notes.ListByServer(ctx, serverID, false)
}

// GetServerNote returns a note by id, including a soft-deleted one.
func (s *Inventory) GetServerNote(ctx context.Context, serverID, noteID int64) (*models.ServerNote, error) {
	n, err := s.repos().Notes.GetByID(ctx, noteID)
	if err != nil {
		return nil, named(err, "note", noteID)
	}
	if n.ServerID != serverID {
		return nil, notFound("note", noteID)
	}
	return n, nil
}

func (s *Inventory) AddServerNote(ctx context.Context, serverID int64, in NoteInput, userID *int64) (*models.ServerNote, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}

	note := &models.ServerNote{
		ServerID:  serverID,
		Note:      in.Note,
		CreatedBy: userID,
		CreatedAt: s.timestamp(),
	}
	err := s.tx(ctx, func(ctx context.Context, r *repomanager.Repositories) error {
		srv, err := r.Servers.GetByID(ctx, serverID)
		if err != nil {
			return named(err, "server", serverID)
		}
		if _, err := r.Notes.Create(ctx, note); err != nil {
			return fmt.Errorf("create note: %w", err)
		}
		return s.record(ctx, r, userID, activity.NoteAdded(srv, note.Note))
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// liveNote loads a note owned by serverID that has not been deleted.
func liveNote(ctx context.Context, r *repomanager.Repositories, serverID, noteID int64) (*models.Server, *models.ServerNote, error) {
	srv, err := r.Servers.GetByID(ctx, serverID)
	if err != nil {
		return nil, nil, named(err, "server", serverID)
	}
	n, err := r.Notes.GetByID(ctx, noteID)
	if err != nil {
		return nil, nil, named(err, "note", noteID)
	}
	if n.ServerID != serverID || n.IsDeleted {
		return nil, nil, notFound("note", noteID)
	}
	return srv, n, nil
}

func (s *Inventory) UpdateServerNote(ctx context.Context, serverID, noteID int64, in NoteInput, userID *int64) (*models.ServerNote, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}

	var note *models.ServerNote
	err := s.tx(ctx, func(ctx context.Context, r *repomanager.Repositories) error {
		srv, n, err := liveNote(ctx, r, serverID, noteID)
		if err != nil {
			return err
		}

		now := s.timestamp()
		n.Note = in.Note
		n.UpdatedAt = &now
		n.UpdatedBy = userID
		if err := r.Notes.Update(ctx, n); err != nil {
			return fmt.Errorf("update note %d: %w", noteID, err)
		}
		note = n
		return s.record(ctx, r, userID, activity.NoteUpdated(srv, n.Note))
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteServerNote soft-deletes a note. It reports false when the note does
// not exist, belongs to another server or is already deleted.
func (s *Inventory) DeleteServerNote(ctx context.Context, serverID, noteID int64, userID *int64) (bool, error) {
	deleted := false
	err := s.tx(ctx, func(ctx context.Context, r *repomanager.Repositories) error {
		srv, n, err := liveNote(ctx, r, serverID, noteID)
		if err != nil {
			if isNotFound(err) {
				return nil
			}
			return err
		}

		now := s.timestamp()
		n.IsDeleted = true
		n.UpdatedAt = &now
		n.UpdatedBy = userID
		if err := r.Notes.Update(ctx, n); err != nil {
			return fmt.Errorf("delete note %d: %w", noteID, err)
		}
		deleted = true
		return s.record(ctx, r, userID, activity.NoteDeleted(srv, n.Note))
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
