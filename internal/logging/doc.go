// Package logging assembles the structured slog loggers used across fabline
// services.
//
// It owns the console/JSON handler selection, centralizes level and output
// plumbing, and exposes attr helper aliases so components emit data with the
// same shape. A no-op logger is provided for tests and wiring code that
// cannot fail.
package logging
