/*
Package domain contains the core domain models of the ntm tracer.

It defines the machine definition (states, alphabets, transition relation), the tape and
configuration snapshots the tracer builds, and the trace results it returns. This package
is kept pure and free of I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Machine: An immutable Turing machine definition with transition lookup.
  - Rule: One entry of the transition relation (read tuple -> next state, write tuple, moves).
  - Tape: A two-sided, copy-on-write tape split around the head.
  - Configuration: A snapshot of state and tape, linked to the configuration that produced it.
  - TraceResult: The verdict, statistics and accepting path of a breadth-first trace.
*/
package domain
