// Package services defines shared utilities consumed by the external service
// clients and the reconciliation run.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, media types, item positions and
//     library server names for logging.
//   - Error markers plus the Wrap helper that classify client failures
//     (unauthorized, unavailable, unexpected response) so callers can log an
//     actionable hint without inspecting HTTP details.
package services
