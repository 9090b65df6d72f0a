package view

import "errors"

var (
	// ErrUnknownMode indicates a visualization mode name outside the enumeration.
	ErrUnknownMode = errors.New("view: unknown visualization mode")

	// ErrNoRun indicates a tick with no run ever started.
	ErrNoRun = errors.New("view: no run started")
)
