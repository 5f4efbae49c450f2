package timeline

import (
	"sync"
)

// DefaultHeaderOffset is the fixed page header height, in pixels, that
// anchor scrolling leaves clear above a period section.
const DefaultHeaderOffset = 80

// Navigator moves the page to a period after it has been selected.
type Navigator interface {
	NavigateToPeriod(slug string)
}

// NavigatorFunc adapts a callback such as a parent's onPeriodSelect.
type NavigatorFunc func(slug string)

func (f NavigatorFunc) NavigateToPeriod(slug string) {
	f(slug)
}

// ScrollTarget is a smooth-scroll request to a period anchor.
type ScrollTarget struct {
	Anchor string `json:"anchor"`
	Offset int    `json:"offset"`
}

// AnchorFor returns the DOM anchor id of a period section.
func AnchorFor(slug string) string {
	return "period-" + slug
}

// AnchorScroller is the built-in navigator: it scrolls to period-{slug},
// leaving room for the header.
type AnchorScroller struct {
	HeaderOffset int
	// Scroll performs the scroll. It may be nil when only the last target matters.
	Scroll func(ScrollTarget)

	mu   sync.Mutex
	last *ScrollTarget
}

// NewAnchorScroller creates a scroller with the given header offset.
func NewAnchorScroller(headerOffset int, scroll func(ScrollTarget)) *AnchorScroller {
	return &AnchorScroller{HeaderOffset: headerOffset, Scroll: scroll}
}

func (a *AnchorScroller) NavigateToPeriod(slug string) {
	target := ScrollTarget{Anchor: AnchorFor(slug), Offset: a.HeaderOffset}
	a.mu.Lock()
	a.last = &target
	a.mu.Unlock()
	if a.Scroll != nil {
		a.Scroll(target)
	}
}

// Last returns the most recent scroll target, if any.
func (a *AnchorScroller) Last() (ScrollTarget, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.last == nil {
		return ScrollTarget{}, false
	}
	return *a.last, true
}
