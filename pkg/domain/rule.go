package domain

import (
	"fmt"
	"strings"
)

// Rule is one entry of the transition relation.
// Read, Write and Move hold one element per tape.
type Rule struct {
	From  string   `json:"from" yaml:"from"`
	Read  []Symbol `json:"read" yaml:"read"`
	To    string   `json:"to" yaml:"to"`
	Write []Symbol `json:"write" yaml:"write"`
	Move  []Move   `json:"move" yaml:"move"`
}

// Matches reports whether the rule applies to the given read tuple.
// A Wildcard in the rule matches any symbol.
func (r Rule) Matches(read []Symbol) bool {
	if len(read) != len(r.Read) {
		return false
	}
	for i, s := range r.Read {
		if s != Wildcard && s != read[i] {
			return false
		}
	}
	return true
}

// IsExact reports whether the rule contains no wildcard in its read tuple.
func (r Rule) IsExact() bool {
	for _, s := range r.Read {
		if s == Wildcard {
			return false
		}
	}
	return true
}

// Label renders the rule the way it is shown next to a configuration: "q0,a -> q1,b,R".
func (r Rule) Label() string {
	return fmt.Sprintf("%s,%s -> %s,%s,%s",
		r.From, joinComma(r.Read), r.To, joinComma(r.Write), joinMoves(r.Move))
}

func joinComma(syms []Symbol) string {
	parts := make([]string, len(syms))
	for i, s := range syms {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}

func joinMoves(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = string(m)
	}
	return strings.Join(parts, ",")
}
