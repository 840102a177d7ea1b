package picker

// SearchState is the resting state of the search box
type SearchState int

const (
	// Collapsed hides the input; only the affordance icon shows
	Collapsed SearchState = iota
	// Expanded shows the input at full width with focus in it
	Expanded
)

func (s SearchState) String() string {
	if s == Expanded {
		return "expanded"
	}
	return "collapsed"
}

// frameMS is the animation frame interval in milliseconds
const frameMS = 20

// SearchBox is the two-state machine behind the search affordance. The
// expand/collapse transition animates the input width between zero and the
// space left of the icon, one Step per frame tick. Toggling mid-flight
// retargets the in-progress animation: last trigger wins, nothing queues.
type SearchBox struct {
	state      SearchState // target endpoint, not necessarily settled
	animating  bool
	width      int // current input width in cells
	maxWidth   int // space available to the input when fully expanded
	durationMS int
	onSettle   func(SearchState)
}

// NewSearchBox creates a collapsed search box. durationMS bounds how long a
// full transition takes; zero or negative makes transitions instantaneous.
func NewSearchBox(durationMS int) *SearchBox {
	return &SearchBox{durationMS: durationMS}
}

// SetOnSettle registers the completion callback, invoked once per settled
// transition with the state just reached. The UI layer focuses or blurs the
// text input here.
func (s *SearchBox) SetOnSettle(fn func(SearchState)) {
	s.onSettle = fn
}

// SetMaxWidth updates the available width (window resizes). A settled
// expanded box snaps to the new width; an in-flight animation keeps going
// toward the new endpoint.
func (s *SearchBox) SetMaxWidth(w int) {
	if w < 0 {
		w = 0
	}
	s.maxWidth = w
	if !s.animating && s.state == Expanded {
		s.width = w
	}
	if s.width > w {
		s.width = w
	}
}

// Toggle flips the target state and reports whether frame stepping is
// needed. If the width already matches the new target the transition
// settles immediately.
func (s *SearchBox) Toggle() bool {
	if s.state == Collapsed {
		s.state = Expanded
	} else {
		s.state = Collapsed
	}

	if s.width == s.target() {
		s.settle()
		return false
	}
	s.animating = true
	return true
}

// Step advances the animation by one frame and reports whether it is still
// in flight. The completion callback fires on the settling step.
func (s *SearchBox) Step() bool {
	if !s.animating {
		return false
	}

	target := s.target()
	step := s.stepSize()
	switch {
	case s.width < target:
		s.width += step
		if s.width > target {
			s.width = target
		}
	case s.width > target:
		s.width -= step
		if s.width < target {
			s.width = target
		}
	}

	if s.width == target {
		s.settle()
		return false
	}
	return true
}

// State returns the target endpoint of the machine
func (s *SearchBox) State() SearchState {
	return s.state
}

// Animating reports whether a transition is in flight
func (s *SearchBox) Animating() bool {
	return s.animating
}

// Width returns the current input width in cells
func (s *SearchBox) Width() int {
	return s.width
}

// IconOffset returns how far the affordance icon has slid from its resting
// position; it tracks the input width so the icon ends at the far edge
func (s *SearchBox) IconOffset() int {
	return s.width
}

func (s *SearchBox) target() int {
	if s.state == Expanded {
		return s.maxWidth
	}
	return 0
}

// stepSize is the per-frame width change needed to cross the full span
// within the configured duration
func (s *SearchBox) stepSize() int {
	frames := s.durationMS / frameMS
	if frames <= 0 {
		return s.maxWidth + 1 // instantaneous
	}
	step := s.maxWidth / frames
	if step < 1 {
		step = 1
	}
	return step
}

func (s *SearchBox) settle() {
	s.animating = false
	if s.onSettle != nil {
		s.onSettle(s.state)
	}
}
