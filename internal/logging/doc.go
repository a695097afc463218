// Package logging assembles structured slog loggers and formatting helpers used
// across postermatch.
//
// It owns the configurable console/JSON handlers, the optional rotating log
// file, and context-aware helpers so matching code can automatically tag log
// lines with the run ID, media type, item position and library server. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape.
package logging
