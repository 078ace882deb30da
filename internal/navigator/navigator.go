// Package navigator turns pointer gestures over a list of N slides into a
// single visible index.
//
// State is a value: every transition returns a new State and leaves the
// receiver untouched.
package navigator

// Threshold is the horizontal distance a drag has to exceed before it
// commits a slide change.
const Threshold = 50.0

// State is the navigator snapshot.
type State struct {
	// Index is the visible slide, or -1 when Count is 0.
	Index int
	// Count is the number of slides the index ranges over.
	Count int

	DragOrigin  float64
	DragCurrent float64
	Dragging    bool

	// Expanded holds the id of the article showing its full content.
	Expanded string
}

// New returns an idle navigator over n slides positioned on the first one.
func New(n int) State {
	if n <= 0 {
		return State{Index: -1}
	}
	return State{Index: 0, Count: n}
}

// Empty reports whether there is nothing to show.
func (s State) Empty() bool {
	return s.Count == 0
}

// Begin starts tracking a gesture at x from any state.
func (s State) Begin(x float64) State {
	s.Dragging = true
	s.DragOrigin = x
	s.DragCurrent = x
	return s
}

// Move records the pointer position. It is a no-op while idle.
func (s State) Move(x float64) State {
	if !s.Dragging {
		return s
	}
	s.DragCurrent = x
	return s
}

// Offset is the current drag displacement, 0 while idle.
func (s State) Offset() float64 {
	if !s.Dragging {
		return 0
	}
	return s.DragCurrent - s.DragOrigin
}

// End finishes the gesture. A drag right beyond Threshold goes to the
// previous slide, a drag left beyond it to the next; moves past either end
// are absorbed. It is a no-op while idle.
func (s State) End() State {
	if !s.Dragging {
		return s
	}
	delta := s.DragCurrent - s.DragOrigin
	s.Dragging = false
	s.DragOrigin = 0
	s.DragCurrent = 0

	switch {
	case delta > Threshold && s.Index > 0:
		s.Index--
	case delta < -Threshold && s.Index < s.Count-1:
		s.Index++
	}
	return s
}

// Select jumps to slide i. Out-of-range indexes leave s unchanged and
// report false.
func (s State) Select(i int) (State, bool) {
	if i < 0 || i >= s.Count {
		return s, false
	}
	s.Index = i
	return s, true
}

// Reconcile adapts s to a list that now holds n slides, keeping the index
// where it is unless it fell off the end. Any drag in progress is dropped.
func (s State) Reconcile(n int) State {
	s.Dragging = false
	s.DragOrigin = 0
	s.DragCurrent = 0
	s.Count = max(n, 0)

	switch {
	case s.Count == 0:
		s.Index = -1
	case s.Index < 0:
		s.Index = 0
	case s.Index > s.Count-1:
		s.Index = s.Count - 1
	}
	return s
}

// ReconcileLegacy reproduces the post-delete rule of the first web client:
// when the index pointed at the last of prevN slides it moves to
// max(0, prevN-2), computed before the refreshed list of n slides is known.
// The result is then bounded to the new list.
func (s State) ReconcileLegacy(prevN, n int) State {
	if s.Index >= prevN-1 {
		s.Index = max(0, prevN-2)
	}
	return s.Reconcile(n)
}

// Expand shows the full content of the article with the given id.
func (s State) Expand(id string) State {
	s.Expanded = id
	return s
}

// Collapse returns to the preview of every article.
func (s State) Collapse() State {
	s.Expanded = ""
	return s
}

// IsExpanded reports whether the article with id shows its full content.
func (s State) IsExpanded(id string) bool {
	return id != "" && s.Expanded == id
}

// HasNext reports whether a slide follows the current one.
func (s State) HasNext() bool {
	return s.Index >= 0 && s.Index < s.Count-1
}
