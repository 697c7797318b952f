// Package scan implements the one-shot scan that reveals highlights as a sweep
// line crosses the document.
//
// The scan is a pure reducer: callers own the clock and feed elapsed time to
// Tick on every frame. Activation depends only on the elapsed fraction and each
// highlight's rank in document order, never on rendered layout.
package scan

import (
	"time"

	"github.com/colonyops/redguard/internal/core/annotate"
)

// DefaultDuration is the wall-clock length of one pass.
const DefaultDuration = 3 * time.Second

// Phase is the state of the sweep.
type Phase int

const (
	Idle Phase = iota
	Scanning
)

func (p Phase) String() string {
	if p == Scanning {
		return "scanning"
	}
	return "idle"
}

// State is the full scan state for the current document.
type State struct {
	Phase    Phase
	Pass     int // incremented every time a new pass starts
	Duration time.Duration
	Elapsed  time.Duration
	Active   annotate.ActiveSet
	Changed  bool // Active membership changed in the last transition

	text  string
	order []string // issue ids by document-order rank
}

// New returns an idle state for passes of the given duration.
func New(duration time.Duration) State {
	return State{
		Phase:    Idle,
		Duration: duration,
		Active:   annotate.ActiveSet{},
	}
}

// Start begins a pass for doc. A document whose text equals the current one
// does not restart the sweep; its highlight order is refreshed and, if the
// previous pass already finished, every highlight stays revealed. An empty
// document resets to idle with nothing active.
func (s State) Start(doc annotate.Document) State {
	order := rankOrder(doc.Highlights)

	if doc.Text != "" && doc.Text == s.text {
		s.order = order
		s.Changed = false
		if s.Phase == Idle && s.Pass > 0 {
			next := annotate.NewActiveSet(order...)
			s.Changed = !next.Equal(s.Active)
			s.Active = next
		}
		return s
	}

	prevActive := s.Active.Len()

	s.text = doc.Text
	s.order = order
	s.Elapsed = 0
	s.Active = annotate.ActiveSet{}
	s.Changed = prevActive > 0

	if doc.Text == "" {
		s.Phase = Idle
		return s
	}

	s.Phase = Scanning
	s.Pass++
	return s
}

// Tick advances the pass to elapsed time since it started. Elapsed values
// smaller than the current one are ignored, so the active set never shrinks
// within a pass. Reaching the full duration ends the pass with every
// highlight active.
func Tick(s State, elapsed time.Duration) State {
	s.Changed = false
	if s.Phase != Scanning {
		return s
	}

	if elapsed > s.Elapsed {
		s.Elapsed = elapsed
	}

	f := s.Fraction()
	next := s.Active.Clone()
	n := len(s.order)
	for rank, id := range s.order {
		if f >= (float64(rank)+0.5)/float64(n) {
			next[id] = struct{}{}
		}
	}

	if f >= 1 {
		s.Phase = Idle
		for _, id := range s.order {
			next[id] = struct{}{}
		}
	}

	s.Changed = !next.Equal(s.Active)
	s.Active = next
	return s
}

// Fraction returns how far the sweep has travelled, in [0, 1].
func (s State) Fraction() float64 {
	if s.Duration <= 0 {
		if s.Pass > 0 {
			return 1
		}
		return 0
	}
	return fraction(s.Elapsed, s.Duration)
}

func fraction(elapsed, total time.Duration) float64 {
	f := float64(elapsed) / float64(total)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

// Position returns the sweep column for a container width columns wide. Width
// is passed on every call so a resized container is measured live.
func (s State) Position(width int) int {
	if width <= 0 {
		return 0
	}
	col := int(s.Fraction() * float64(width))
	return min(max(col, 0), width)
}

// Scanning reports whether a pass is in progress.
func (s State) Scanning() bool { return s.Phase == Scanning }

// Accepts reports whether a frame scheduled for pass should still be applied.
// Frames from a superseded pass, or arriving after the pass ended, are dropped.
func (s State) Accepts(pass int) bool {
	return s.Phase == Scanning && s.Pass == pass
}

// Total returns the number of highlights taking part in the pass.
func (s State) Total() int { return len(s.order) }

func rankOrder(highlights []annotate.Highlight) []string {
	sorted := annotate.SortByStart(highlights)
	order := make([]string, len(sorted))
	for i, h := range sorted {
		order[i] = h.IssueID
	}
	return order
}
