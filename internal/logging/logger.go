// Package logging wires the process-wide slog setup: JSON to stdout always,
// plus an async PostgreSQL sink for ERROR records when the backend runs on
// the postgres store.
package logging

import (
	"log/slog"
	"os"
)

// Setup installs the stdout JSON logger as the slog default. On the postgres
// backend, main later replaces it with a MultiHandler that adds the DB sink.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
