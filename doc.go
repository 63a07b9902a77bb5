/*
Package ntm traces nondeterministic Turing machines breadth first.

Given a one-tape machine and an input string, the engine explores the tree of
configurations level by level until a branch reaches the accept state, every branch
dies, or a depth bound is hit. The result carries the verdict, the number of
transitions simulated, the nondeterminism degree (transitions per configuration that
had any), and the accepting path with the rule taken at every step.

# Concept

A machine is a plain definition (course CSV format, YAML or JSON) served by a
MachineLoader: a single file, a directory-backed Loam library, or memory. The engine
parses it, applies a wildcard policy, and hands it to the runtime. Observability
(logging, metrics) hangs off lifecycle hooks that fire before and after each run,
never inside the simulation loop.

# Key Features

  - Breadth-first tracing: the first accepting configuration in level order wins.
  - Wildcards: "*" matches any symbol on read and keeps the symbol on write.
  - Deterministic k-tape runs for machines with several tapes.
  - Static validation: unreachable states, dead ends, unreachable accept state.

# Usage

	eng, err := ntm.New("machines/ends_in_one.tm")
	if err != nil {
		log.Fatal(err)
	}

	res, err := eng.Trace(context.Background(), "ends_in_one", "0101", 50)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Verdict, res.Depth, res.Degree)
*/
package ntm
