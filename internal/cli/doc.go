// Package cli implements the command-line interface for tourwatch.
//
// The cli package provides the Cobra-based CLI: a one-shot check as the root
// command plus watch, replay, and status subcommands. It wires config,
// storage, source, and notifiers together and reports results as text or
// JSON, with the exit code signalling whether new dates were found.
package cli
