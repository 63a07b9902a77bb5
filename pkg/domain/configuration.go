package domain

import "fmt"

// Configuration is one snapshot of a computation: a state and a tape.
// Configurations are never modified after creation; children are new values that
// point back to the configuration that produced them.
type Configuration struct {
	State  string
	Tape   Tape
	Parent *Configuration
	// Via is the label of the rule that produced this configuration (empty for the root).
	Via   string
	Depth int
}

// NewRoot builds the depth-0 configuration for input.
func NewRoot(state string, input string) *Configuration {
	return &Configuration{State: state, Tape: NewTape(Symbols(input))}
}

// Child applies rule r to c and returns the resulting configuration.
// Only the first tape element of the rule is used.
func (c *Configuration) Child(r Rule) *Configuration {
	return &Configuration{
		State:  r.To,
		Tape:   c.Tape.Apply(r.Write[0], r.Move[0]),
		Parent: c,
		Via:    r.Label(),
		Depth:  c.Depth + 1,
	}
}

// Path returns the configurations from the root to c.
func (c *Configuration) Path() []*Configuration {
	n := 0
	for cur := c; cur != nil; cur = cur.Parent {
		n++
	}
	path := make([]*Configuration, n)
	for cur := c; cur != nil; cur = cur.Parent {
		n--
		path[n] = cur
	}
	return path
}

// Step returns the display form of c.
func (c *Configuration) Step() PathStep {
	return PathStep{
		Depth: c.Depth,
		Left:  c.Tape.LeftText(),
		State: c.State,
		Head:  string(c.Tape.Head()),
		Right: c.Tape.RestText(),
		Via:   c.Via,
	}
}

func (c *Configuration) String() string {
	return fmt.Sprintf("%s, %s, %s, %s", c.Tape.LeftText(), c.State, c.Tape.Head(), c.Tape.RestText())
}
