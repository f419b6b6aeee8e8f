// Package services provides the stateless dispatch services that work across
// the order and courier aggregates.
//
// The package includes:
//   - Scorer: the weighted composite suitability score of a courier against
//     a candidate order, with a per-component breakdown
//   - Matcher: eligibility filtering and stable ranking of a courier pool
//     for a pickup point
//
// Both are pure: they read projections, never mutate aggregates, and are
// safe for concurrent use.
package services
