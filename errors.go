package main

import "errors"

// Error taxonomy for the bot's own components. External-library errors are
// wrapped into one of these before they cross a handler boundary, so callers
// can classify failures with errors.Is without inspecting messages.
var (
	// ErrDataFormat marks a persisted history row that cannot be parsed
	// into a well-formed draw record.
	ErrDataFormat = errors.New("malformed draw record")

	// ErrEmptyTable is returned by queries that need at least one draw.
	ErrEmptyTable = errors.New("no draw history loaded")

	// ErrOutOfRange marks a query parameter outside its domain.
	ErrOutOfRange = errors.New("parameter out of range")

	// ErrEvaluation marks an arithmetic expression that is invalid or unsafe.
	ErrEvaluation = errors.New("cannot evaluate expression")

	// ErrRender marks a chart generation failure. Callers must not assume
	// any partial image output is usable.
	ErrRender = errors.New("chart rendering failed")

	// ErrExternalService marks a failure of the LLM, vision or chat
	// transport boundary. Possibly transient; safe to retry with backoff.
	ErrExternalService = errors.New("external service failure")
)
