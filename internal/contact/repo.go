package contact

import (
	"context"
	"database/sql"
	"fmt"

	"portfolio/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) Record(ctx context.Context, m models.ContactMessage) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO contact_messages (id, name, email, subject, message, delivery, status, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.Name, m.Email, m.Subject, m.Message, m.Delivery, m.Status, nullString(m.Error), m.CreatedAt)
	if err != nil {
		return fmt.Errorf("record contact message: %w", err)
	}
	return nil
}

type ListQuery struct {
	Status string
	Limit  int
	Offset int
}

// List returns archived messages, newest first.
func (r *Repo) List(ctx context.Context, q ListQuery) ([]models.ContactMessage, error) {
	if q.Limit <= 0 || q.Limit > 200 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	query := `
		SELECT id, name, email, subject, message, delivery, status, error, created_at
		FROM contact_messages
	`
	var args []any
	if q.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, q.Status)
	}
	query += ` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`
	args = append(args, q.Limit, q.Offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	out := []models.ContactMessage{}
	for rows.Next() {
		var (
			m       models.ContactMessage
			errText sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message,
			&m.Delivery, &m.Status, &errText, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		m.Error = errText.String
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return out, nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count contact messages: %w", err)
	}
	return n, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
