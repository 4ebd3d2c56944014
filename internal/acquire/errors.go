package acquire

import "fmt"

// ToolError is the terminal error after the acquisition tool's diagnostic
// output remained non-empty through every attempt. It carries the last
// diagnostic text and is classified as a client-input failure: the source
// reference was bad, not the server.
type ToolError struct {
	Diagnostic string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("acquisition tool: %s", e.Diagnostic)
}

// SpawnError is the terminal error after the acquisition tool could not be
// launched on any attempt. Classified as a server failure.
type SpawnError struct {
	Err error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn acquisition tool: %v", e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ParseError reports malformed structured output from a successful tool
// run. It is never retried; retrying the orchestrator is a separate
// decision and re-parsing the same bytes cannot succeed.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse acquisition result: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
