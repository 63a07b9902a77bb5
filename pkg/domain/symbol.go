package domain

import (
	"fmt"
	"strings"
)

// Symbol is the content of a single tape cell.
type Symbol string

const (
	// Blank occupies every cell that was never written.
	Blank Symbol = "_"
	// Wildcard matches any symbol when read and keeps the read symbol when written.
	Wildcard Symbol = "*"
)

// Symbols splits an input string into one symbol per rune.
func Symbols(s string) []Symbol {
	out := make([]Symbol, 0, len(s))
	for _, r := range s {
		out = append(out, Symbol(string(r)))
	}
	return out
}

// Join concatenates symbols back into display text.
func Join(syms []Symbol) string {
	var sb strings.Builder
	for _, s := range syms {
		sb.WriteString(string(s))
	}
	return sb.String()
}

// Move is a head movement direction.
type Move string

const (
	MoveLeft  Move = "L"
	MoveRight Move = "R"
	MoveStay  Move = "S"
)

// ParseMove converts a move token ("L", "R", "S", case-insensitive) into a Move.
func ParseMove(s string) (Move, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return MoveLeft, nil
	case "R":
		return MoveRight, nil
	case "S":
		return MoveStay, nil
	default:
		return "", fmt.Errorf("invalid move %q", s)
	}
}
