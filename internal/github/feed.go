package github

import (
	"context"
	stderrors "errors"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"portfolio/pkg/errors"
	"portfolio/pkg/models"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusEmpty   Status = "empty"
	StatusReady   Status = "ready"
)

// State is what the portfolio page renders. Projects is only set when
// Status is ready.
type State struct {
	Status    Status                `json:"status"`
	Message   string                `json:"message,omitempty"`
	Projects  []models.ProjectEntry `json:"projects"`
	Attempt   uint64                `json:"attempt"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// Feed tracks the latest repository fetch. At most one fetch is current;
// results of superseded fetches are dropped.
type Feed struct {
	source  Fetcher
	timeout time.Duration
	logger  *zap.Logger

	mu       sync.Mutex
	state    State
	gen      uint64
	inflight chan struct{}
	cancel   context.CancelFunc
}

func NewFeed(source Fetcher, timeout time.Duration, logger *zap.Logger) *Feed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{
		source:  source,
		timeout: timeout,
		logger:  logger,
		state:   State{Status: StatusIdle},
	}
}

func (f *Feed) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.state
	s.Projects = slices.Clone(s.Projects)
	return s
}

// Refresh starts a fetch unless one is already running. It reports whether
// a fetch was started.
func (f *Feed) Refresh(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inflight != nil {
		return false
	}
	f.startLocked(ctx)
	return true
}

// Restart abandons any running fetch and starts a new one.
func (f *Feed) Restart(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
	}
	f.startLocked(ctx)
}

// Load starts a fetch (or joins the running one) and waits for it.
func (f *Feed) Load(ctx context.Context) (State, error) {
	f.mu.Lock()
	if f.inflight == nil {
		f.startLocked(ctx)
	}
	done := f.inflight
	f.mu.Unlock()

	select {
	case <-done:
		return f.State(), nil
	case <-ctx.Done():
		return f.State(), ctx.Err()
	}
}

func (f *Feed) startLocked(ctx context.Context) {
	f.gen++
	gen := f.gen

	// the fetch outlives the request that triggered it
	base := context.WithoutCancel(ctx)
	var (
		fetchCtx context.Context
		cancel   context.CancelFunc
	)
	if f.timeout > 0 {
		fetchCtx, cancel = context.WithTimeout(base, f.timeout)
	} else {
		fetchCtx, cancel = context.WithCancel(base)
	}

	done := make(chan struct{})
	f.inflight = done
	f.cancel = cancel
	f.state = State{Status: StatusLoading, Attempt: gen, UpdatedAt: time.Now()}

	go f.run(fetchCtx, cancel, gen, done)
}

func (f *Feed) run(ctx context.Context, cancel context.CancelFunc, gen uint64, done chan struct{}) {
	defer close(done)
	defer cancel()

	projects, err := f.source.FetchProjects(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.gen {
		f.logger.Debug("Dropping superseded repository fetch",
			zap.Uint64("attempt", gen),
			zap.Uint64("current", f.gen),
		)
		return
	}
	f.inflight = nil
	f.cancel = nil

	now := time.Now()
	switch {
	case err != nil:
		f.logger.Warn("Repository fetch failed", zap.Uint64("attempt", gen), zap.Error(err))
		f.state = State{Status: StatusError, Message: failureMessage(err), Attempt: gen, UpdatedAt: now}
	case len(projects) == 0:
		f.state = State{Status: StatusEmpty, Attempt: gen, UpdatedAt: now}
	default:
		f.state = State{Status: StatusReady, Projects: projects, Attempt: gen, UpdatedAt: now}
	}
}

func failureMessage(err error) string {
	var fe *errors.FetchError
	if stderrors.As(err, &fe) {
		return "Failed to fetch repositories: " + fe.Message
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return "Failed to fetch repositories: the request timed out"
	}
	return "Failed to fetch repositories"
}
