package panel

import (
	"context"
	"log/slog"
	"sort"
	"sync"
)

// Panel is the type-erased surface a controller exposes to the manager and
// the API layer.
type Panel interface {
	Name() string
	Start(ctx context.Context)
	Stop()
	SetSymbol(symbol string)
	SetInterval(interval string)
	View() View
}

// Manager owns the dashboard's panel set. It starts and stops the panels
// together, fans the active symbol and interval out to them, and publishes
// view changes to subscribers. Panels stay independent: one panel's
// persistent failure never touches its siblings.
type Manager struct {
	mu          sync.RWMutex
	panels      map[string]Panel
	symbol      string
	interval    string
	subscribers map[chan View]struct{}
	logger      *slog.Logger
}

// NewManager creates an empty manager with the given active symbol and
// interval defaults.
func NewManager(symbol, interval string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		panels:      make(map[string]Panel),
		symbol:      symbol,
		interval:    interval,
		subscribers: make(map[chan View]struct{}),
		logger:      logger,
	}
}

// Register adds a panel. Panels are registered before Start.
func (m *Manager) Register(p Panel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panels[p.Name()] = p
}

// Start activates every registered panel.
func (m *Manager) Start(ctx context.Context) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.panels {
		p.Start(ctx)
	}
	m.logger.Info("panels started", "count", len(m.panels), "symbol", m.symbol)
}

// Stop deactivates every panel and drops all subscribers.
func (m *Manager) Stop() {
	m.mu.Lock()
	panels := make([]Panel, 0, len(m.panels))
	for _, p := range m.panels {
		panels = append(panels, p)
	}
	for ch := range m.subscribers {
		close(ch)
	}
	m.subscribers = make(map[chan View]struct{})
	m.mu.Unlock()

	for _, p := range panels {
		p.Stop()
	}
	m.logger.Info("panels stopped", "count", len(panels))
}

// Symbol returns the active symbol.
func (m *Manager) Symbol() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.symbol
}

// Interval returns the active chart interval.
func (m *Manager) Interval() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.interval
}

// SetSymbol switches the active symbol on every panel.
func (m *Manager) SetSymbol(symbol string) {
	m.mu.Lock()
	if m.symbol == symbol {
		m.mu.Unlock()
		return
	}
	m.symbol = symbol
	panels := make([]Panel, 0, len(m.panels))
	for _, p := range m.panels {
		panels = append(panels, p)
	}
	m.mu.Unlock()

	m.logger.Info("active symbol changed", "symbol", symbol)
	for _, p := range panels {
		p.SetSymbol(symbol)
	}
}

// SetInterval switches the active chart interval on interval-driven panels.
func (m *Manager) SetInterval(interval string) {
	m.mu.Lock()
	if m.interval == interval {
		m.mu.Unlock()
		return
	}
	m.interval = interval
	panels := make([]Panel, 0, len(m.panels))
	for _, p := range m.panels {
		panels = append(panels, p)
	}
	m.mu.Unlock()

	m.logger.Info("active interval changed", "interval", interval)
	for _, p := range panels {
		p.SetInterval(interval)
	}
}

// Views returns the current view of every panel, sorted by panel name.
func (m *Manager) Views() []View {
	m.mu.RLock()
	panels := make([]Panel, 0, len(m.panels))
	for _, p := range m.panels {
		panels = append(panels, p)
	}
	m.mu.RUnlock()

	views := make([]View, 0, len(panels))
	for _, p := range panels {
		views = append(views, p.View())
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Panel < views[j].Panel })
	return views
}

// View returns one panel's view by name.
func (m *Manager) View(name string) (View, bool) {
	m.mu.RLock()
	p, ok := m.panels[name]
	m.mu.RUnlock()
	if !ok {
		return View{}, false
	}
	return p.View(), true
}

// Subscribe registers for view-change notifications. The returned cancel
// function must be called when the subscriber goes away. Slow subscribers
// lose updates instead of blocking the panels.
func (m *Manager) Subscribe() (<-chan View, func()) {
	ch := make(chan View, 64)
	m.mu.Lock()
	m.subscribers[ch] = struct{}{}
	m.mu.Unlock()

	cancel := func() {
		m.mu.Lock()
		if _, ok := m.subscribers[ch]; ok {
			delete(m.subscribers, ch)
			close(ch)
		}
		m.mu.Unlock()
	}
	return ch, cancel
}

// Publish forwards a view change to all subscribers. Wired into every
// controller's OnUpdate.
func (m *Manager) Publish(v View) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for ch := range m.subscribers {
		select {
		case ch <- v:
		default:
		}
	}
}
