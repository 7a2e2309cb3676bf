// Package activity builds the audit entries appended for every inventory
// mutation and writes them through an activities.Repository.
package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/srvtrack/internal/server/models"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/activities"
)

// PreviewLen is the maximum length, in runes, of a note preview.
const PreviewLen = 30

// Entry is an activity that has not been stored yet.
type Entry struct {
	Type        models.ActivityType
	ServerID    int64
	Description string
}

// Recorder stamps entries with the current time and the acting user.
type Recorder struct {
	now func() time.Time
}

func NewRecorder(now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{now: now}
}

// Record appends e. It must run in the same unit of work as the mutation it
// describes; a failure here fails the mutation.
func (r *Recorder) Record(ctx context.Context, repo activities.Repository, userID *int64, e Entry) (*models.Activity, error) {
	serverID := e.ServerID
	a := &models.Activity{
		ServerID:    &serverID,
		Type:        e.Type,
		Description: e.Description,
		UserID:      userID,
		CreatedAt:   r.now().UTC().Truncate(time.Microsecond),
	}
	created, err := repo.Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("record %s activity: %w", e.Type, err)
	}
	return created, nil
}

// Preview shortens text to at most PreviewLen runes, marking the cut with
// "...".
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) <= PreviewLen {
		return text
	}
	return string(runes[:PreviewLen-3]) + "..."
}

func ServerAdded(s *models.Server) Entry {
	desc := fmt.Sprintf("Server %s added", s.ServerID)
	if s.Model != "" {
		desc += fmt.Sprintf(" (%s)", s.Model)
	}
	return Entry{Type: models.ActivityAdd, ServerID: s.ID, Description: desc}
}

func ServerEdited(s *models.Server) Entry {
	return Entry{Type: models.ActivityEdit, ServerID: s.ID, Description: fmt.Sprintf("Server %s updated", s.ServerID)}
}

func StatusChanged(s *models.Server, from, to models.ServerStatus) Entry {
	return Entry{
		Type:        models.ActivitySetup,
		ServerID:    s.ID,
		Description: fmt.Sprintf("Server %s status changed: %s -> %s", s.ServerID, from, to),
	}
}

func ServerDeleted(s *models.Server) Entry {
	return Entry{Type: models.ActivityDelete, ServerID: s.ID, Description: fmt.Sprintf("Server %s deleted", s.ServerID)}
}

func Transferred(s *models.Server, from, to string) Entry {
	return Entry{
		Type:        models.ActivityTransfer,
		ServerID:    s.ID,
		Description: fmt.Sprintf("Server %s transferred from %s to %s", s.ServerID, from, to),
	}
}

func NoteAdded(s *models.Server, text string) Entry {
	return Entry{Type: models.ActivityNote, ServerID: s.ID, Description: fmt.Sprintf("Note added to %s: %q", s.ServerID, Preview(text))}
}

func NoteUpdated(s *models.Server, text string) Entry {
	return Entry{Type: models.ActivityNote, ServerID: s.ID, Description: fmt.Sprintf("Note updated on %s: %q", s.ServerID, Preview(text))}
}

func NoteDeleted(s *models.Server, text string) Entry {
	return Entry{Type: models.ActivityDelete, ServerID: s.ID, Description: fmt.Sprintf("Note deleted from %s: %q", s.ServerID, Preview(text))}
}

func DetailAdded(s *models.Server, d *models.ServerDetail) Entry {
	return Entry{Type: models.ActivitySetup, ServerID: s.ID, Description: fmt.Sprintf("VM %s (%s) added to %s", d.VMName, d.IPAddress, s.ServerID)}
}

func DetailUpdated(s *models.Server, d *models.ServerDetail) Entry {
	return Entry{Type: models.ActivitySetup, ServerID: s.ID, Description: fmt.Sprintf("VM %s (%s) updated on %s", d.VMName, d.IPAddress, s.ServerID)}
}

func DetailDeleted(s *models.Server, d *models.ServerDetail) Entry {
	return Entry{Type: models.ActivityDelete, ServerID: s.ID, Description: fmt.Sprintf("VM %s (%s) removed from %s", d.VMName, d.IPAddress, s.ServerID)}
}
