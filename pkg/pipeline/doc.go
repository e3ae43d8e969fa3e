/*
Package pipeline wires text sources and sinks around the markov package.

A Pipeline reads training text from a Source, builds a markov.Chain from it,
walks the chain with a markov.Generator and hands every generated sample to a
Sink. Each stage is an explicit value, so any of them can be swapped out in
tests or by the caller.
*/
package pipeline
