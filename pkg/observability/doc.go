/*
Package observability provides tools for monitoring the ntm engine.

Metrics is a Prometheus collector set on a private registry. It is fed through the
engine's lifecycle hooks, so the simulation loop itself never touches a metric, and it
can be exported as a node_exporter textfile at the end of a command.
*/
package observability
