package domain

import (
	"fmt"
	"slices"
)

// WildcardPolicy decides how wildcard rules combine with exact rules during lookup.
type WildcardPolicy string

const (
	// WildcardExactFirst uses wildcard rules only when no exact rule matches.
	WildcardExactFirst WildcardPolicy = "exact-first"
	// WildcardUnion applies every matching rule, exact or wildcard, in definition order.
	WildcardUnion WildcardPolicy = "union"
)

// ParseWildcardPolicy converts a policy name into a WildcardPolicy.
// The empty string selects WildcardExactFirst.
func ParseWildcardPolicy(s string) (WildcardPolicy, error) {
	switch WildcardPolicy(s) {
	case "", WildcardExactFirst:
		return WildcardExactFirst, nil
	case WildcardUnion:
		return WildcardUnion, nil
	default:
		return "", fmt.Errorf("unknown wildcard policy %q", s)
	}
}

// MachineSpec is the raw definition of a machine as produced by a parser.
type MachineSpec struct {
	Name          string   `json:"name" yaml:"name"`
	Tapes         int      `json:"tapes,omitempty" yaml:"tapes,omitempty"`
	States        []string `json:"states" yaml:"states"`
	InputAlphabet []Symbol `json:"input_alphabet" yaml:"input_alphabet"`
	TapeAlphabet  []Symbol `json:"tape_alphabet" yaml:"tape_alphabet"`
	Start         string   `json:"start" yaml:"start"`
	Accept        string   `json:"accept" yaml:"accept"`
	Reject        string   `json:"reject,omitempty" yaml:"reject,omitempty"`
	Rules         []Rule   `json:"transitions" yaml:"transitions"`
}

// Machine is an immutable, validated Turing machine definition.
type Machine struct {
	spec   MachineSpec
	policy WildcardPolicy
	states map[string]bool
	input  map[Symbol]bool
	index  map[string][]Rule
}

// NewMachine validates spec and builds a Machine using the WildcardExactFirst policy.
// Accept and reject states are added to the state set when the definition omits them.
func NewMachine(spec MachineSpec) (*Machine, error) {
	fail := func(format string, args ...any) error {
		return &MachineDefinitionError{Machine: spec.Name, Reason: fmt.Sprintf(format, args...)}
	}

	if spec.Tapes == 0 {
		spec.Tapes = 1
	}
	if spec.Tapes < 0 {
		return nil, fail("tape count must be positive, got %d", spec.Tapes)
	}
	if len(spec.States) == 0 {
		return nil, fail("missing state list")
	}
	if spec.Start == "" {
		return nil, fail("missing start state")
	}
	if spec.Accept == "" {
		return nil, fail("missing accept state")
	}

	spec = cloneSpec(spec)
	states := make(map[string]bool, len(spec.States)+2)
	for _, s := range spec.States {
		if s == "" {
			return nil, fail("empty state name")
		}
		states[s] = true
	}
	for _, s := range []string{spec.Accept, spec.Reject} {
		if s != "" && !states[s] {
			states[s] = true
			spec.States = append(spec.States, s)
		}
	}
	if !states[spec.Start] {
		return nil, fail("start state %q is not declared", spec.Start)
	}

	tapeSyms := make(map[Symbol]bool, len(spec.TapeAlphabet)+2)
	for _, s := range spec.TapeAlphabet {
		tapeSyms[s] = true
	}
	tapeSyms[Blank] = true
	tapeSyms[Wildcard] = true
	knownSymbol := func(s Symbol) bool {
		return len(spec.TapeAlphabet) == 0 || tapeSyms[s]
	}

	input := make(map[Symbol]bool, len(spec.InputAlphabet))
	for _, s := range spec.InputAlphabet {
		input[s] = true
	}

	index := make(map[string][]Rule)
	for i, r := range spec.Rules {
		if !states[r.From] {
			return nil, fail("transition %d: undefined state %q", i+1, r.From)
		}
		if !states[r.To] {
			return nil, fail("transition %d: undefined state %q", i+1, r.To)
		}
		if len(r.Read) != spec.Tapes || len(r.Write) != spec.Tapes || len(r.Move) != spec.Tapes {
			return nil, fail("transition %d: expected %d read/write/move symbols, got %d/%d/%d",
				i+1, spec.Tapes, len(r.Read), len(r.Write), len(r.Move))
		}
		for _, s := range r.Read {
			if !knownSymbol(s) {
				return nil, fail("transition %d: undefined read symbol %q", i+1, s)
			}
		}
		for _, s := range r.Write {
			if !knownSymbol(s) {
				return nil, fail("transition %d: undefined write symbol %q", i+1, s)
			}
		}
		for _, mv := range r.Move {
			if mv != MoveLeft && mv != MoveRight && mv != MoveStay {
				return nil, fail("transition %d: invalid move %q", i+1, mv)
			}
		}
		index[r.From] = append(index[r.From], r)
	}

	return &Machine{
		spec:   spec,
		policy: WildcardExactFirst,
		states: states,
		input:  input,
		index:  index,
	}, nil
}

// WithPolicy returns a copy of the machine that resolves wildcards with policy p.
func (m *Machine) WithPolicy(p WildcardPolicy) *Machine {
	cp := *m
	cp.policy = p
	return &cp
}

// Transitions returns every rule of state whose read tuple matches read,
// honouring the machine's wildcard policy. An empty result is an implicit reject.
// The returned rules share their tuples with the machine and must not be modified.
func (m *Machine) Transitions(state string, read ...Symbol) []Rule {
	var exact, wild, all []Rule
	for _, r := range m.index[state] {
		if !r.Matches(read) {
			continue
		}
		all = append(all, r)
		if r.IsExact() {
			exact = append(exact, r)
		} else {
			wild = append(wild, r)
		}
	}
	if m.policy == WildcardUnion {
		return all
	}
	if len(exact) > 0 {
		return exact
	}
	return wild
}

// RulesFrom returns the rules leaving state in definition order.
func (m *Machine) RulesFrom(state string) []Rule {
	return slices.Clone(m.index[state])
}

// ValidateInput checks input against the input alphabet.
// Machines that declare no input alphabet accept any input.
func (m *Machine) ValidateInput(input string) error {
	if len(m.input) == 0 {
		return nil
	}
	for i, s := range Symbols(input) {
		if !m.input[s] {
			return &InvalidInputError{Symbol: s, Position: i}
		}
	}
	return nil
}

func (m *Machine) Name() string            { return m.spec.Name }
func (m *Machine) Tapes() int              { return m.spec.Tapes }
func (m *Machine) Start() string           { return m.spec.Start }
func (m *Machine) Accept() string          { return m.spec.Accept }
func (m *Machine) Reject() string          { return m.spec.Reject }
func (m *Machine) Policy() WildcardPolicy  { return m.policy }
func (m *Machine) HasState(s string) bool  { return m.states[s] }
func (m *Machine) IsAccept(s string) bool  { return s == m.spec.Accept }
func (m *Machine) IsReject(s string) bool  { return m.spec.Reject != "" && s == m.spec.Reject }
func (m *Machine) States() []string        { return slices.Clone(m.spec.States) }
func (m *Machine) InputAlphabet() []Symbol { return slices.Clone(m.spec.InputAlphabet) }
func (m *Machine) TapeAlphabet() []Symbol  { return slices.Clone(m.spec.TapeAlphabet) }
func (m *Machine) Rules() []Rule           { return slices.Clone(m.spec.Rules) }
func (m *Machine) Spec() MachineSpec       { return cloneSpec(m.spec) }

func cloneSpec(s MachineSpec) MachineSpec {
	s.States = slices.Clone(s.States)
	s.InputAlphabet = slices.Clone(s.InputAlphabet)
	s.TapeAlphabet = slices.Clone(s.TapeAlphabet)
	rules := make([]Rule, len(s.Rules))
	for i, r := range s.Rules {
		rules[i] = Rule{
			From:  r.From,
			Read:  slices.Clone(r.Read),
			To:    r.To,
			Write: slices.Clone(r.Write),
			Move:  slices.Clone(r.Move),
		}
	}
	s.Rules = rules
	return s
}
