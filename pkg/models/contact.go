package models

import "time"

// ContactChannel is one line of the contact info panel.
type ContactChannel struct {
	Icon  Icon   `json:"icon" yaml:"icon"`
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
	Link  string `json:"link,omitempty" yaml:"link"`
}

// ContactDraft is the in-progress contact form. All four fields are required.
type ContactDraft struct {
	Name    string `json:"name" form:"name" binding:"required"`
	Email   string `json:"email" form:"email" binding:"required"`
	Subject string `json:"subject" form:"subject" binding:"required"`
	Message string `json:"message" form:"message" binding:"required"`
}

// ContactMessage is an archived submission attempt.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Delivery  string    `json:"delivery"`
	Status    string    `json:"status"` // "sent" | "failed" | "handed_off"
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
