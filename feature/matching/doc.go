// Package matching implements the licensee matching feature.
//
// It links two licensing datasets (certificates and individuals) to the
// authority report through seven exact-match tiers each, using core/reconcile,
// and writes every tier result to the dataset store.
//
// # Components
//
//   - Service: loads and normalizes the inputs, runs both tracks, writes and
//     combines results, and counts dataset records.
//   - History: optional gorm-backed log of written results (match_runs).
//   - Handler: HTTP endpoints.
//   - Feature: registers the handler with core/loader.
//
// # HTTP Endpoints
//
//   - POST /match : run both tracks.
//   - POST /match/combine : combine stored individual and certificate results.
//   - GET /match/counts?prefix= : record count of every dataset under prefix.
//   - GET /match/runs?limit= : latest recorded results.
package matching
