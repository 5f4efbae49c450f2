// Package timeline tracks the active historical period of the timeline view
// and derives the events shown for it.
package timeline

import (
	"sync"

	"suviet_server/internal/models"
)

// LoadState distinguishes data not yet delivered from data that is empty.
type LoadState int

const (
	StatePending LoadState = iota
	StateEmpty
	StateReady
)

func (s LoadState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateEmpty:
		return "empty"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

func (s LoadState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Group is a period with the events that belong to it.
type Group struct {
	Period models.Period  `json:"period"`
	Events []models.Event `json:"events"`
}

// Selector holds the timeline's period/event data and its active period.
type Selector struct {
	nav Navigator

	mu           sync.RWMutex
	loaded       bool
	periods      []models.Period
	events       []models.Event
	activeSlug   string
	externalSlug string
}

// NewSelector creates a selector. A nil navigator selects the built-in
// anchor scroller with the default header offset.
func NewSelector(nav Navigator) *Selector {
	if nav == nil {
		nav = NewAnchorScroller(DefaultHeaderOffset, nil)
	}
	return &Selector{nav: nav}
}

// SetData delivers the fetched periods (in display order) and events.
func (s *Selector) SetData(periods []models.Period, events []models.Event) {
	s.mu.Lock()
	s.periods = append([]models.Period(nil), periods...)
	s.events = append([]models.Event(nil), events...)
	s.loaded = true
	s.mu.Unlock()
}

// LoadState reports pending until SetData, then empty or ready.
func (s *Selector) LoadState() LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case !s.loaded:
		return StatePending
	case len(s.periods) == 0:
		return StateEmpty
	default:
		return StateReady
	}
}

// SyncActive applies an externally supplied active slug. It only takes
// effect when the value differs from the previous external value, so a
// local selection survives until the parent actually changes its input.
func (s *Selector) SyncActive(slug string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slug == s.externalSlug {
		return
	}
	s.externalSlug = slug
	s.activeSlug = slug
}

// SelectPeriod makes slug active and hands navigation to the navigator.
func (s *Selector) SelectPeriod(slug string) {
	s.mu.Lock()
	s.activeSlug = slug
	s.mu.Unlock()
	s.nav.NavigateToPeriod(slug)
}

// ActiveSlug returns the raw active slug, which may name no known period.
func (s *Selector) ActiveSlug() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeSlug
}

// activeIndex must be called with the lock held.
func (s *Selector) activeIndex() int {
	if len(s.periods) == 0 {
		return -1
	}
	if i := IndexOf(s.periods, s.activeSlug); i >= 0 {
		return i
	}
	return 0
}

// ActiveIndex returns the position of the active period, or -1 without periods.
func (s *Selector) ActiveIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeIndex()
}

// ActivePeriod returns the period matching the active slug, falling back to
// the first period.
func (s *Selector) ActivePeriod() (models.Period, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.activeIndex()
	if i < 0 {
		return models.Period{}, false
	}
	return s.periods[i], true
}

// ActivePeriodEvents returns the events of the active period.
func (s *Selector) ActivePeriodEvents() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.activeIndex()
	if i < 0 {
		return []models.Event{}
	}
	return FilterEvents(s.events, s.periods[i].ID)
}

// HasPrevious reports whether a period precedes the active one.
func (s *Selector) HasPrevious() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeIndex() > 0
}

// HasNext reports whether a period follows the active one.
func (s *Selector) HasNext() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.activeIndex()
	return i >= 0 && i < len(s.periods)-1
}

// Previous selects the preceding period. It is a no-op on the first period.
func (s *Selector) Previous() bool {
	return s.step(-1)
}

// Next selects the following period. It is a no-op on the last period.
func (s *Selector) Next() bool {
	return s.step(1)
}

func (s *Selector) step(delta int) bool {
	s.mu.RLock()
	i := s.activeIndex()
	target := i + delta
	if i < 0 || target < 0 || target >= len(s.periods) {
		s.mu.RUnlock()
		return false
	}
	slug := s.periods[target].Slug
	s.mu.RUnlock()

	s.SelectPeriod(slug)
	return true
}

// Groups returns every period with its events. Orphaned events are dropped.
func (s *Selector) Groups() []Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return GroupEvents(s.periods, s.events)
}

// Snapshot is the serializable view of the selector.
type Snapshot struct {
	State        LoadState      `json:"state"`
	ActivePeriod *models.Period `json:"active_period"`
	Events       []models.Event `json:"events"`
	HasPrevious  bool           `json:"has_previous"`
	HasNext      bool           `json:"has_next"`
	PreviousSlug string         `json:"previous_slug,omitempty"`
	NextSlug     string         `json:"next_slug,omitempty"`
	Anchor       string         `json:"anchor,omitempty"`
	Groups       []Group        `json:"groups"`
}

// Snapshot captures the current view in one consistent read.
func (s *Selector) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		State:  StatePending,
		Events: []models.Event{},
		Groups: GroupEvents(s.periods, s.events),
	}
	if s.loaded {
		snap.State = StateEmpty
	}

	i := s.activeIndex()
	if i < 0 {
		return snap
	}

	snap.State = StateReady
	active := s.periods[i]
	snap.ActivePeriod = &active
	snap.Events = FilterEvents(s.events, active.ID)
	snap.Anchor = AnchorFor(active.Slug)
	if i > 0 {
		snap.HasPrevious = true
		snap.PreviousSlug = s.periods[i-1].Slug
	}
	if i < len(s.periods)-1 {
		snap.HasNext = true
		snap.NextSlug = s.periods[i+1].Slug
	}
	return snap
}

// IndexOf returns the index of the period with slug, or -1.
func IndexOf(periods []models.Period, slug string) int {
	if slug == "" {
		return -1
	}
	for i := range periods {
		if periods[i].Slug == slug {
			return i
		}
	}
	return -1
}

// FilterEvents returns the events belonging to periodID, in input order.
func FilterEvents(events []models.Event, periodID uint) []models.Event {
	out := make([]models.Event, 0)
	for _, e := range events {
		if e.PeriodID == periodID {
			out = append(out, e)
		}
	}
	return out
}

// GroupEvents buckets events under their periods, keeping period order.
// Events whose period is unknown appear in no group.
func GroupEvents(periods []models.Period, events []models.Event) []Group {
	groups := make([]Group, len(periods))
	index := make(map[uint]int, len(periods))
	for i, p := range periods {
		groups[i] = Group{Period: p, Events: []models.Event{}}
		index[p.ID] = i
	}
	for _, e := range events {
		if i, ok := index[e.PeriodID]; ok {
			groups[i].Events = append(groups[i].Events, e)
		}
	}
	return groups
}
