// Package autosave persists edited documents on a debounce timer.
//
// After every accepted edit the caller hands the full current document to
// Schedule; bursts of edits within the debounce window collapse into a single
// save. Saves are serialized: while one is in flight no second save starts,
// and edits arriving during a save mark the coordinator dirty so exactly one
// follow-up save runs afterward. A failed save never rolls back in-memory
// state; the coordinator surfaces an error state, keeps the unsaved document,
// and retries transient failures.
package autosave

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jverdier/coursemap/pkg/document"
	"github.com/jverdier/coursemap/pkg/observability"
	"github.com/jverdier/coursemap/pkg/store"
)

// DefaultDebounce is the quiet period after the last edit before a save fires.
const DefaultDebounce = 800 * time.Millisecond

// State describes what the coordinator is currently doing.
type State int

const (
	// StateIdle means nothing is scheduled or in flight.
	StateIdle State = iota
	// StatePending means a debounce timer is armed.
	StatePending
	// StateSaving means a persistence call is in flight.
	StateSaving
	// StateError means the most recent save failed; the unsaved document is
	// retained and a retry may be scheduled.
	StateError
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSaving:
		return "saving"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Coordinator debounces and serializes saves for one open document.
// Create one per editing session with New.
type Coordinator struct {
	st       store.Store
	debounce time.Duration
	logger   *log.Logger

	mu       sync.Mutex
	docID    string
	pending  document.Document
	dirty    bool
	inFlight bool
	state    State
	lastErr  error
	timer    *time.Timer
	closed   bool

	wg sync.WaitGroup
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithDebounce overrides the debounce window.
func WithDebounce(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a coordinator saving to st under docID. An empty docID means
// the first save creates the document; the assigned ID is picked up from the
// save result and used from then on.
func New(st store.Store, docID string, opts ...Option) *Coordinator {
	c := &Coordinator{
		st:       st,
		docID:    docID,
		debounce: DefaultDebounce,
		logger:   log.New(io.Discard),
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Schedule records doc as the document to persist and (re)starts the debounce
// timer. Calling it again before the timer fires replaces the document and
// restarts the window, so rapid edits coalesce into one save.
func (c *Coordinator) Schedule(doc document.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.pending = doc.Clone()
	c.dirty = true
	if !c.inFlight {
		c.state = StatePending
	}
	c.armTimerLocked(c.debounce)

	c.logger.Debug("save scheduled", "doc", c.docID, "debounce", c.debounce)
	observability.Save().OnSaveScheduled(context.Background(), c.docID)
}

// SaveNow bypasses the debounce: it cancels any pending timer, waits for an
// in-flight save to finish, and persists the latest document synchronously.
// Returns the save error, or the last save error when nothing was dirty.
func (c *Coordinator) SaveNow(ctx context.Context) error {
	for {
		c.mu.Lock()
		c.stopTimerLocked()
		if c.inFlight {
			c.mu.Unlock()
			c.wg.Wait()
			continue
		}
		if !c.dirty {
			err := c.lastErr
			c.mu.Unlock()
			return err
		}
		doc := c.pending
		c.dirty = false
		c.inFlight = true
		c.state = StateSaving
		c.mu.Unlock()

		if err := c.save(ctx, doc); err != nil {
			return err
		}
	}
}

// State returns the current coordinator state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the error of the most recent failed save, or nil.
func (c *Coordinator) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// DocumentID returns the ID the coordinator saves under. Until the first
// successful save of a new document this is the ID passed to New.
func (c *Coordinator) DocumentID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.docID
}

// Close cancels any pending timer, flushes unsaved edits with one final
// synchronous save, and waits for in-flight work. The coordinator ignores
// Schedule calls afterwards.
func (c *Coordinator) Close() error {
	c.mu.Lock()
	c.closed = true
	c.stopTimerLocked()
	c.mu.Unlock()

	err := c.SaveNow(context.Background())
	c.wg.Wait()
	return err
}

// armTimerLocked (re)starts the debounce timer. Callers must hold mu.
func (c *Coordinator) armTimerLocked(d time.Duration) {
	c.stopTimerLocked()
	c.timer = time.AfterFunc(d, c.fire)
}

// stopTimerLocked cancels a pending timer. Callers must hold mu.
func (c *Coordinator) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// fire runs when the debounce timer elapses and starts the async save.
// If a save is already in flight the dirty document stays put; completion of
// the in-flight save re-arms the timer.
func (c *Coordinator) fire() {
	c.mu.Lock()
	if c.closed || c.inFlight || !c.dirty {
		c.mu.Unlock()
		return
	}
	doc := c.pending
	c.dirty = false
	c.inFlight = true
	c.state = StateSaving
	// Register with the wait group before releasing the lock: SaveNow and
	// Close wait on it right after observing inFlight, so the Add must not
	// trail the unlock.
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		_ = c.save(context.Background(), doc)
	}()
}

// save performs one persistence call with retry on transient failures, then
// updates coordinator state. The full document is written every time; the
// most recent save wins, no merging is attempted.
func (c *Coordinator) save(ctx context.Context, doc document.Document) error {
	start := time.Now()

	var res store.SaveResult
	err := store.RetryWithBackoff(ctx, func() error {
		var saveErr error
		res, saveErr = c.st.Save(ctx, c.DocumentID(), doc)
		return saveErr
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	if err != nil {
		c.lastErr = err
		c.state = StateError
		// Keep the unsaved document. A newer Schedule during the save
		// already replaced pending; otherwise put the failed one back.
		if !c.dirty {
			c.pending = doc
			c.dirty = true
		}
		// Transient faults get another attempt after a fresh debounce
		// window; permanent ones wait for the next edit.
		if !c.closed && store.IsTransient(err) {
			c.armTimerLocked(c.debounce)
		}
		c.logger.Warn("save failed", "doc", c.docID, "err", err)
		observability.Save().OnSaveFailed(ctx, c.docID, err)
		return err
	}

	c.docID = res.ID
	c.lastErr = nil
	if c.dirty {
		// Edits arrived while saving; give them their own quiet period.
		c.state = StatePending
		if !c.closed {
			c.armTimerLocked(c.debounce)
		}
	} else {
		c.state = StateIdle
	}

	c.logger.Debug("save succeeded", "doc", c.docID, "took", time.Since(start))
	observability.Save().OnSaveSucceeded(ctx, c.docID, time.Since(start))
	return nil
}
