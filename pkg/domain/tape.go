package domain

import "slices"

// Tape is a bi-infinite tape split around the head.
// Left holds the cells strictly left of the head in left-to-right order; Right starts
// at the head cell. An empty Right reads as a single Blank cell.
//
// Tapes are values: every operation returns a new Tape and never writes into storage
// shared with the receiver.
type Tape struct {
	left  []Symbol
	right []Symbol
}

// NewTape places input on a fresh tape with the head on its first symbol.
// Empty input yields a single Blank cell under the head.
func NewTape(input []Symbol) Tape {
	if len(input) == 0 {
		return Tape{right: []Symbol{Blank}}
	}
	return Tape{right: slices.Clone(input)}
}

// Head returns the symbol under the head.
func (t Tape) Head() Symbol {
	if len(t.right) == 0 {
		return Blank
	}
	return t.right[0]
}

// Write replaces the head cell. Writing Wildcard leaves the cell unchanged.
func (t Tape) Write(s Symbol) Tape {
	if s == Wildcard {
		return t
	}
	var rest []Symbol
	if len(t.right) > 1 {
		rest = t.right[1:]
	}
	return Tape{left: t.left, right: slices.Concat([]Symbol{s}, rest)}
}

// Shift moves the head one cell.
// Moving left off the written region prepends a Blank instead of moving the content.
func (t Tape) Shift(m Move) Tape {
	switch m {
	case MoveRight:
		var rest []Symbol
		if len(t.right) > 1 {
			rest = t.right[1:]
		}
		return Tape{left: slices.Concat(t.left, []Symbol{t.Head()}), right: rest}
	case MoveLeft:
		right := t.right
		if len(right) == 0 {
			right = []Symbol{Blank}
		}
		if len(t.left) == 0 {
			return Tape{right: slices.Concat([]Symbol{Blank}, right)}
		}
		last := len(t.left) - 1
		return Tape{left: t.left[:last:last], right: slices.Concat([]Symbol{t.left[last]}, right)}
	default:
		return t
	}
}

// Apply writes s and then moves the head.
func (t Tape) Apply(s Symbol, m Move) Tape {
	return t.Write(s).Shift(m)
}

// Left returns a copy of the cells left of the head.
func (t Tape) Left() []Symbol { return slices.Clone(t.left) }

// Right returns a copy of the cells from the head rightward.
func (t Tape) Right() []Symbol { return slices.Clone(t.right) }

// LeftText is the text left of the head.
func (t Tape) LeftText() string { return Join(t.left) }

// RestText is the text strictly right of the head.
func (t Tape) RestText() string {
	if len(t.right) <= 1 {
		return ""
	}
	return Join(t.right[1:])
}

// String renders the visible tape: left + head + rest.
func (t Tape) String() string {
	return t.LeftText() + string(t.Head()) + t.RestText()
}

// Snapshot returns the display form of the tape.
func (t Tape) Snapshot() TapeSnapshot {
	return TapeSnapshot{Left: t.LeftText(), Head: string(t.Head()), Right: t.RestText()}
}

// TapeSnapshot is the display form of a tape split at its head.
type TapeSnapshot struct {
	Left  string `json:"left"`
	Head  string `json:"head"`
	Right string `json:"right"`
}
