package inbox

import (
	"context"
	"time"

	"portfolio/internal/contact"
	"portfolio/pkg/models"
)

// Archive records through the wrapped archive and announces what it stored.
type Archive struct {
	Next contact.Archive
	Hub  *Hub
}

func NewArchive(next contact.Archive, hub *Hub) *Archive {
	return &Archive{Next: next, Hub: hub}
}

func (a *Archive) Record(ctx context.Context, m models.ContactMessage) error {
	if err := a.Next.Record(ctx, m); err != nil {
		return err
	}
	msg := m
	go a.Hub.Broadcast(Event{Type: "contact.message", Message: &msg, At: time.Now().UTC()})
	return nil
}
