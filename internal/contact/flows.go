package contact

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultFlowIdle = 30 * time.Minute

// Flows keeps one Flow per visitor session.
type Flows struct {
	deliverer Deliverer
	archive   Archive
	opts      FlowOptions
	idle      time.Duration
	logger    *zap.Logger

	mu    sync.Mutex
	flows map[string]*flowEntry
}

type flowEntry struct {
	flow     *Flow
	lastSeen time.Time
}

func NewFlows(d Deliverer, archive Archive, opts FlowOptions, logger *zap.Logger) *Flows {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flows{
		deliverer: d,
		archive:   archive,
		opts:      opts,
		idle:      defaultFlowIdle,
		logger:    logger,
		flows:     make(map[string]*flowEntry),
	}
}

func (fs *Flows) Mode() string { return fs.deliverer.Mode() }

// Get returns the visitor's flow, creating it on first use. Idle flows are
// dropped on the way.
func (fs *Flows) Get(session string) *Flow {
	now := time.Now()

	fs.mu.Lock()
	defer fs.mu.Unlock()

	for id, e := range fs.flows {
		if id != session && now.Sub(e.lastSeen) > fs.idle && !e.flow.Submitting() {
			e.flow.Close()
			delete(fs.flows, id)
		}
	}

	e, ok := fs.flows[session]
	if !ok {
		e = &flowEntry{flow: NewFlow(fs.deliverer, fs.archive, fs.opts, fs.logger)}
		fs.flows[session] = e
	}
	e.lastSeen = now
	return e.flow
}

// Transient returns a flow that is not kept between requests. The caller
// closes it.
func (fs *Flows) Transient() *Flow {
	return NewFlow(fs.deliverer, fs.archive, fs.opts, fs.logger)
}

func (fs *Flows) Len() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.flows)
}

// Close stops every flow's timers.
func (fs *Flows) Close() {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for id, e := range fs.flows {
		e.flow.Close()
		delete(fs.flows, id)
	}
}
