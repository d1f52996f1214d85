package calendar

import "errors"

var ErrInvalidRange = errors.New("end date must not be before start date")

// State is the phase of a date range selection
type State int

const (
	StateEmpty State = iota
	StatePartial
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePartial:
		return "partial"
	case StateComplete:
		return "complete"
	}
	return "unknown"
}

// Selection is the visitor's reservation window. A zero Start means nothing
// is selected; a zero End with a set Start is a single-day (partial) selection.
type Selection struct {
	Start Date
	End   Date
}

// NewSelection builds a selection from explicit bounds. A zero end is allowed
// and means a single day.
func NewSelection(start, end Date) (Selection, error) {
	if start.IsZero() {
		if !end.IsZero() {
			return Selection{}, ErrInvalidRange
		}
		return Selection{}, nil
	}
	if !end.IsZero() && end.Before(start) {
		return Selection{}, ErrInvalidRange
	}
	return Selection{Start: start, End: end}, nil
}

func (s Selection) State() State {
	switch {
	case s.Start.IsZero():
		return StateEmpty
	case s.End.IsZero():
		return StatePartial
	default:
		return StateComplete
	}
}

// Click applies a day click and returns the resulting selection.
//
//	empty    -> partial[day]
//	partial  -> complete[start, day] when day is after start, else partial[day]
//	complete -> empty when day is one of the bounds, else partial[day]
func (s Selection) Click(day Date) Selection {
	switch s.State() {
	case StatePartial:
		if day.After(s.Start) {
			return Selection{Start: s.Start, End: day}
		}
		return Selection{Start: day}
	case StateComplete:
		if day.Equal(s.Start) || day.Equal(s.End) {
			return Selection{}
		}
		return Selection{Start: day}
	default:
		return Selection{Start: day}
	}
}

// Bounds returns the inclusive window. The end defaults to the start for a
// partial selection; ok is false for an empty one.
func (s Selection) Bounds() (start, end Date, ok bool) {
	if s.Start.IsZero() {
		return Date{}, Date{}, false
	}
	if s.End.IsZero() {
		return s.Start, s.Start, true
	}
	return s.Start, s.End, true
}

// Days enumerates the selected days
func (s Selection) Days() []Date {
	start, end, ok := s.Bounds()
	if !ok {
		return nil
	}
	return Days(start, end)
}

// Contains reports whether day falls inside the selected window
func (s Selection) Contains(day Date) bool {
	start, end, ok := s.Bounds()
	if !ok {
		return false
	}
	return !day.Before(start) && !day.After(end)
}
