package contact

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"portfolio/pkg/errors"
	"portfolio/pkg/models"
)

// ErrInFlight rejects a submit while the previous one is still running.
var ErrInFlight = errors.NewSiteError("a submission is already in progress", errors.CodeSubmission, 409, nil)

const (
	DefaultAckDuration = 5 * time.Second
	DefaultResetDelay  = time.Second
)

type FlowOptions struct {
	AckDuration time.Duration
	ResetDelay  time.Duration
}

// Archive records every submission attempt.
type Archive interface {
	Record(ctx context.Context, m models.ContactMessage) error
}

// Result is what a visitor sees after a successful submit.
type Result struct {
	Status       string `json:"status"`
	HandoffURI   string `json:"handoff_uri,omitempty"`
	Acknowledged bool   `json:"acknowledged"`
}

// Flow is one visitor's contact form. The draft is kept until a delivery
// succeeds.
type Flow struct {
	deliverer Deliverer
	archive   Archive
	opts      FlowOptions
	logger    *zap.Logger

	mu         sync.Mutex
	draft      models.ContactDraft
	submitting bool
	ack        bool
	lastErr    string
	ackTimer   *time.Timer
	resetTimer *time.Timer
	closed     bool
}

func NewFlow(d Deliverer, archive Archive, opts FlowOptions, logger *zap.Logger) *Flow {
	if opts.AckDuration <= 0 {
		opts.AckDuration = DefaultAckDuration
	}
	if opts.ResetDelay <= 0 {
		opts.ResetDelay = DefaultResetDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flow{deliverer: d, archive: archive, opts: opts, logger: logger}
}

func (f *Flow) SetDraft(d models.ContactDraft) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = d
}

func (f *Flow) Draft() models.ContactDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *Flow) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Acknowledged reports whether the success notice is still showing.
func (f *Flow) Acknowledged() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ack
}

// TakeError returns the last failure message once.
func (f *Flow) TakeError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg := f.lastErr
	f.lastErr = ""
	return msg
}

// Submit validates the draft and hands it to the deliverer. On failure the
// draft is kept and nothing is retried.
func (f *Flow) Submit(ctx context.Context) (Result, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return Result{}, ErrInFlight
	}
	if err := validate(f.draft); err != nil {
		f.lastErr = err.Message
		f.mu.Unlock()
		return Result{}, err
	}
	f.submitting = true
	f.lastErr = ""
	draft := f.draft
	f.mu.Unlock()

	outcome, err := f.deliverer.Deliver(ctx, payloadFrom(draft))
	f.record(ctx, draft, outcome, err)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false

	if err != nil {
		f.lastErr = "Failed to send message. Please try again later."
		return Result{}, err
	}

	if outcome.Status == StatusHandedOff {
		// no confirmation comes back from a mail client; a draft started
		// after the handoff is left alone
		f.schedule(&f.resetTimer, f.opts.ResetDelay, func() {
			if f.draft == draft {
				f.draft = models.ContactDraft{}
			}
		})
		return Result{Status: outcome.Status, HandoffURI: outcome.HandoffURI}, nil
	}

	f.draft = models.ContactDraft{}
	f.ack = true
	f.schedule(&f.ackTimer, f.opts.AckDuration, func() { f.ack = false })
	return Result{Status: outcome.Status, Acknowledged: true}, nil
}

// schedule runs fn under the lock after d, replacing any pending timer in slot.
func (f *Flow) schedule(slot **time.Timer, d time.Duration, fn func()) {
	if f.closed {
		return
	}
	if *slot != nil {
		(*slot).Stop()
	}
	*slot = time.AfterFunc(d, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if !f.closed {
			fn()
		}
	})
}

// Close stops pending timers.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	for _, t := range []*time.Timer{f.ackTimer, f.resetTimer} {
		if t != nil {
			t.Stop()
		}
	}
}

func (f *Flow) record(ctx context.Context, d models.ContactDraft, outcome Outcome, deliverErr error) {
	if f.archive == nil {
		return
	}
	m := models.ContactMessage{
		ID:        uuid.NewString(),
		Name:      d.Name,
		Email:     d.Email,
		Subject:   d.Subject,
		Message:   d.Message,
		Delivery:  f.deliverer.Mode(),
		Status:    outcome.Status,
		CreatedAt: time.Now().UTC(),
	}
	if deliverErr != nil {
		m.Status = StatusFailed
		m.Error = deliverErr.Error()
	}
	// archive failures never block the visitor
	if err := f.archive.Record(context.WithoutCancel(ctx), m); err != nil {
		f.logger.Error("Failed to archive contact message", zap.String("id", m.ID), zap.Error(err))
	}
}

func validate(d models.ContactDraft) *errors.ValidationError {
	fields := []struct{ name, value string }{
		{"name", d.Name},
		{"email", d.Email},
		{"subject", d.Subject},
		{"message", d.Message},
	}
	for _, fld := range fields {
		if strings.TrimSpace(fld.value) == "" {
			return errors.NewValidationError(fld.name+" is required", fld.name)
		}
	}
	return nil
}
