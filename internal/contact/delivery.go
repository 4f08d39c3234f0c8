// Package contact runs the contact form: draft, validation, delivery and
// the submission archive.
package contact

import (
	"context"

	"portfolio/pkg/models"
)

// Submission outcomes as archived.
const (
	StatusSent      = "sent"
	StatusFailed    = "failed"
	StatusHandedOff = "handed_off"
)

// Payload is what every delivery mechanism sends.
type Payload struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

func payloadFrom(d models.ContactDraft) Payload {
	return Payload{
		FromName:  d.Name,
		FromEmail: d.Email,
		Subject:   d.Subject,
		Message:   d.Message,
	}
}

// Outcome is a successful delivery. HandoffURI is set when the message
// leaves through the visitor's own mail client.
type Outcome struct {
	Status     string
	HandoffURI string
}

// Deliverer is one delivery mechanism. A deployment uses exactly one.
type Deliverer interface {
	Mode() string
	Deliver(ctx context.Context, p Payload) (Outcome, error)
}
