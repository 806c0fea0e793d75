package panel

import (
	"time"

	"github.com/Flowearn/Flow-data/internal/binance"
)

// Phase is the lifecycle state of a panel. A panel is in exactly one phase;
// combinations like "loading and error at once" are unrepresentable.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseLoading  Phase = "loading"
	PhaseReady    Phase = "ready"
	PhaseDegraded Phase = "degraded"
	PhaseError    Phase = "error"
)

// Identity is the (symbol, parameters) tuple a fetch belongs to. Results
// resolved under a stale identity are discarded, never applied.
type Identity struct {
	Symbol   string
	Interval binance.Interval
	Limit    int
}

// View is the read-only snapshot a panel exposes to the rendering surface.
// Data stays populated through Loading and Degraded so the surface never
// flickers to an empty state once something has rendered.
type View struct {
	Panel     string    `json:"panel"`
	Symbol    string    `json:"symbol"`
	Interval  string    `json:"interval,omitempty"`
	Phase     Phase     `json:"phase"`
	Data      any       `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
	Synthetic bool      `json:"synthetic"`
	UpdatedAt time.Time `json:"updated_at"`
}
