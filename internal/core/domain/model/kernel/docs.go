// Package kernel provides the core domain primitives shared across the
// dispatch engine's domain model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - GeoPoint: a validated latitude/longitude pair with Haversine distances
//
// Both primitives are immutable, thread-safe, and must be created through
// their constructor functions; zero values fail validation.
package kernel
