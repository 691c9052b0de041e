// Package logging builds the structured log/slog loggers used across the module.
// Output is JSON by default with a text option for local runs, and the logger
// is supplied to the Fx graph by the root package.
package logging
