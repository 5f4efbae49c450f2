package popup

import (
	"context"
	"sync"
	"time"

	"suviet_server/internal/clock"
	"suviet_server/pkg/colors"
)

// State is where the gate is in its per-page-view lifecycle.
type State int

const (
	StateUnresolved State = iota
	StateSuppressed
	StateScheduled
	StateVisible
	StateDismissed
)

func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateSuppressed:
		return "suppressed"
	case StateScheduled:
		return "scheduled"
	case StateVisible:
		return "visible"
	case StateDismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

// Default presentation delays.
const (
	DefaultShowDelay = time.Second
	DefaultHideDelay = 300 * time.Millisecond
)

// Scheduler runs f once after d. Pending calls are never cancelled; the gate
// ignores callbacks that arrive after it has moved on.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// ShouldShow reports whether the popup may be shown at now given the last
// dismissal time. The cooldown threshold is inclusive: exactly cooldown hours
// after a dismissal the popup shows again.
func ShouldShow(s Settings, lastDismissed *time.Time, now time.Time) bool {
	if !s.Showable() {
		return false
	}
	if lastDismissed == nil {
		return true
	}
	hoursSince := now.Sub(*lastDismissed).Hours()
	return !(hoursSince < s.CooldownHours)
}

// Gate coordinates the settings fetch, the cooldown check and the
// show/dismiss timers for one page view.
type Gate struct {
	fetcher   Fetcher
	store     Store
	clock     clock.Clock
	scheduler Scheduler
	showDelay time.Duration
	hideDelay time.Duration
	onChange  func(State)

	resolveOnce sync.Once

	mu       sync.Mutex
	state    State
	settings Settings
	visible  bool
	mounted  bool
	// closed is set when Close runs before the gate is scheduled.
	closed bool
}

// Option configures a Gate.
type Option func(*Gate)

// WithClock sets the time source.
func WithClock(c clock.Clock) Option {
	return func(g *Gate) { g.clock = c }
}

// WithScheduler sets the timer implementation.
func WithScheduler(s Scheduler) Option {
	return func(g *Gate) { g.scheduler = s }
}

// WithDelays overrides the show and hide delays. Non-positive values keep the defaults.
func WithDelays(show, hide time.Duration) Option {
	return func(g *Gate) {
		if show > 0 {
			g.showDelay = show
		}
		if hide > 0 {
			g.hideDelay = hide
		}
	}
}

// WithStateListener registers fn to be called after every state transition.
func WithStateListener(fn func(State)) Option {
	return func(g *Gate) { g.onChange = fn }
}

// NewGate creates a gate in the Unresolved state.
func NewGate(fetcher Fetcher, store Store, opts ...Option) *Gate {
	g := &Gate{
		fetcher:   fetcher,
		store:     store,
		clock:     clock.NewSystem(),
		scheduler: timerScheduler{},
		showDelay: DefaultShowDelay,
		hideDelay: DefaultHideDelay,
		state:     StateUnresolved,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Resolve fetches the settings and decides the outcome. Only the first call
// does any work; later calls return the current state.
func (g *Gate) Resolve(ctx context.Context) State {
	g.resolveOnce.Do(func() {
		g.resolve(ctx)
	})
	return g.State()
}

func (g *Gate) resolve(ctx context.Context) {
	settings, err := g.fetcher.Fetch(ctx)
	if err != nil {
		colors.PrintError("Failed to load popup settings: %v", err)
		g.transition(StateSuppressed)
		return
	}

	last, err := LastDismissed(g.store)
	if err != nil {
		colors.PrintWarning("Ignoring unreadable popup dismissal record: %v", err)
		last = nil
	}

	g.mu.Lock()
	g.settings = settings
	g.mu.Unlock()

	if !ShouldShow(settings, last, g.clock.Now()) {
		g.transition(StateSuppressed)
		return
	}

	g.mu.Lock()
	if g.closed {
		g.state = StateSuppressed
	} else {
		g.state = StateScheduled
	}
	next := g.state
	g.mu.Unlock()
	g.notify(next)

	if next == StateScheduled {
		g.scheduler.AfterFunc(g.showDelay, g.show)
	}
}

func (g *Gate) show() {
	g.mu.Lock()
	if g.state != StateScheduled {
		g.mu.Unlock()
		return
	}
	g.state = StateVisible
	g.visible = true
	g.mounted = true
	g.mu.Unlock()
	g.notify(StateVisible)
}

// Close records the dismissal, hides the popup at once and unmounts it after
// the hide delay. Calling it again overwrites the record with the newer time.
// A Close that lands while Resolve is still running suppresses the popup.
func (g *Gate) Close() error {
	err := RecordDismissal(g.store, g.clock.Now())
	if err != nil {
		colors.PrintError("Failed to save popup dismissal: %v", err)
	}

	g.mu.Lock()
	changed := false
	switch g.state {
	case StateUnresolved:
		g.closed = true
	case StateScheduled, StateVisible:
		g.state = StateDismissed
		changed = true
	}
	g.visible = false
	dismissed := g.state == StateDismissed
	g.mu.Unlock()

	if changed {
		g.notify(StateDismissed)
	}
	if dismissed {
		g.scheduler.AfterFunc(g.hideDelay, g.unmount)
	}
	return err
}

func (g *Gate) unmount() {
	g.mu.Lock()
	if g.state == StateDismissed {
		g.mounted = false
	}
	g.mu.Unlock()
}

func (g *Gate) transition(s State) {
	g.mu.Lock()
	g.state = s
	g.mu.Unlock()
	g.notify(s)
}

func (g *Gate) notify(s State) {
	if g.onChange != nil {
		g.onChange(s)
	}
}

// State returns the current lifecycle state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Visible reports whether the popup is currently displayed.
func (g *Gate) Visible() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.visible
}

// Mounted reports whether the popup is still part of the rendered page,
// which stays true through the hide transition.
func (g *Gate) Mounted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mounted
}

// Settings returns the settings the decision was made with.
func (g *Gate) Settings() Settings {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.settings
}
