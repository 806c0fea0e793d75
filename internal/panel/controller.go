package panel

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Flowearn/Flow-data/internal/binance"
)

// FetchFunc produces the panel's dataset for one identity from the upstream.
type FetchFunc[T any] func(ctx context.Context, id Identity) (T, error)

// FallbackFunc synthesizes a stand-in dataset for one identity when the
// upstream fails. A nil FallbackFunc disables degradation for the panel.
type FallbackFunc[T any] func(id Identity) T

// Config describes one panel.
type Config[T any] struct {
	Name            string
	RefreshInterval time.Duration
	Fetch           FetchFunc[T]
	Fallback        FallbackFunc[T]
	// IntervalDriven marks panels whose identity includes the chart
	// timeframe; SetInterval is a no-op on the others.
	IntervalDriven bool
	Logger         *slog.Logger
	// OnUpdate is invoked with a fresh view after every state change.
	OnUpdate func(View)
}

// Controller drives one panel's lifecycle: fetch on start and on a fixed
// timer, replace state on success, degrade to synthetic data on failure,
// discard stale-identity results, stop cleanly. Each controller owns its
// state exclusively; panels never share memory.
type Controller[T any] struct {
	cfg Config[T]

	mu         sync.RWMutex
	identity   Identity
	generation uint64
	phase      Phase
	data       T
	hasData    bool
	synthetic  bool
	lastErr    error
	updatedAt  time.Time

	kick   chan struct{}
	cancel context.CancelFunc
	done   chan struct{}
}

// NewController creates a controller in the Idle phase.
func NewController[T any](id Identity, cfg Config[T]) *Controller[T] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Controller[T]{
		cfg:      cfg,
		identity: id,
		phase:    PhaseIdle,
		kick:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Name returns the panel name.
func (c *Controller[T]) Name() string { return c.cfg.Name }

// Start activates the panel: an immediate first fetch, then one per refresh
// interval until the context is cancelled or Stop is called.
func (c *Controller[T]) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	go c.run(ctx)
}

// Stop deactivates the panel. The pending timer is cancelled and any
// in-flight fetch result becomes a no-op.
func (c *Controller[T]) Stop() {
	if c.cancel != nil {
		c.cancel()
		<-c.done
	}
}

// SetSymbol switches the panel to a new symbol. The identity generation is
// bumped so an in-flight fetch for the old symbol is discarded on arrival,
// and a fresh fetch starts immediately.
func (c *Controller[T]) SetSymbol(symbol string) {
	c.mu.Lock()
	if c.identity.Symbol == symbol {
		c.mu.Unlock()
		return
	}
	c.identity.Symbol = symbol
	c.changeIdentityLocked()
	c.mu.Unlock()
	c.notify()
	c.requestRefresh()
}

// SetInterval switches the chart timeframe on interval-driven panels.
func (c *Controller[T]) SetInterval(interval string) {
	if !c.cfg.IntervalDriven {
		return
	}
	c.mu.Lock()
	if string(c.identity.Interval) == interval {
		c.mu.Unlock()
		return
	}
	c.identity.Interval = binance.Interval(interval)
	c.changeIdentityLocked()
	c.mu.Unlock()
	c.notify()
	c.requestRefresh()
}

// changeIdentityLocked invalidates in-flight work and drops state belonging
// to the previous identity. Callers hold c.mu.
func (c *Controller[T]) changeIdentityLocked() {
	c.generation++
	c.phase = PhaseLoading
	var zero T
	c.data = zero
	c.hasData = false
	c.synthetic = false
	c.lastErr = nil
	c.updatedAt = time.Now().UTC()
}

// View returns a copy of the panel's current state.
func (c *Controller[T]) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viewLocked()
}

func (c *Controller[T]) viewLocked() View {
	v := View{
		Panel:     c.cfg.Name,
		Symbol:    c.identity.Symbol,
		Phase:     c.phase,
		Synthetic: c.synthetic,
		UpdatedAt: c.updatedAt,
	}
	if c.cfg.IntervalDriven {
		v.Interval = string(c.identity.Interval)
	}
	if c.hasData {
		v.Data = c.data
	}
	if c.lastErr != nil {
		v.Error = c.lastErr.Error()
	}
	return v
}

func (c *Controller[T]) notify() {
	if c.cfg.OnUpdate != nil {
		c.cfg.OnUpdate(c.View())
	}
}

func (c *Controller[T]) requestRefresh() {
	select {
	case c.kick <- struct{}{}:
	default:
	}
}

func (c *Controller[T]) run(ctx context.Context) {
	defer close(c.done)

	ticker := time.NewTicker(c.cfg.RefreshInterval)
	defer ticker.Stop()

	c.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.kick:
			c.refresh(ctx)
		case <-ticker.C:
			c.refresh(ctx)
		}
	}
}

// refresh performs one fetch cycle. The generation captured before the fetch
// is compared after it resolves; a mismatch means the identity changed while
// the fetch was in flight and the result belongs to a stale identity.
func (c *Controller[T]) refresh(ctx context.Context) {
	c.mu.Lock()
	id := c.identity
	gen := c.generation
	c.phase = PhaseLoading
	c.mu.Unlock()
	c.notify()

	data, err := c.cfg.Fetch(ctx, id)
	if ctx.Err() != nil {
		return
	}

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		c.cfg.Logger.Debug("discarding stale fetch result",
			"panel", c.cfg.Name,
			"symbol", id.Symbol)
		return
	}

	if err == nil {
		c.data = data
		c.hasData = true
		c.synthetic = false
		c.lastErr = nil
		c.phase = PhaseReady
		c.updatedAt = time.Now().UTC()
		c.mu.Unlock()
		c.notify()
		return
	}

	c.cfg.Logger.Warn("fetch failed",
		"panel", c.cfg.Name,
		"symbol", id.Symbol,
		"error", err)

	switch {
	case c.cfg.Fallback != nil:
		c.data = c.cfg.Fallback(id)
		c.hasData = true
		c.synthetic = true
		c.lastErr = err
		c.phase = PhaseDegraded
	case c.hasData:
		// keep showing the last dataset rather than going blank
		c.lastErr = err
		c.phase = PhaseDegraded
	default:
		// first ever fetch failed and nothing can stand in for it
		c.lastErr = err
		c.phase = PhaseError
	}
	c.updatedAt = time.Now().UTC()
	c.mu.Unlock()
	c.notify()
}
