package main

type ExitStatus int

const (
	ExitSuccess ExitStatus = 0
	ExitFailure ExitStatus = 1
	// ExitUsage is returned for a bad command line; the evaluator never runs.
	ExitUsage       ExitStatus = 2
	ExitInterrupted ExitStatus = 130
)
