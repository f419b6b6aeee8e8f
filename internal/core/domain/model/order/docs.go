// Package order implements the Order aggregate root: the lifecycle state
// machine, the immutable pricing and confirmation code issued at creation,
// the append-only transition history, and the buffered lifecycle events.
//
// The package includes:
//   - Order: the aggregate root; every status change goes through it
//   - Status: the closed transition table (pending -> assigned -> picked_up
//     -> in_transit -> delivered, with cancellation from pending/assigned)
//   - Actor/Role: who drives a transition; actor preconditions are part of
//     the transition rules
//   - Pricing: the decimal monetary breakdown, fixed at creation
//   - TransitionRecord: the immutable per-transition audit entry
//
// Key business rules:
//   - delivered requires the confirmation code issued at creation
//   - cancelled requires a non-empty reason
//   - a courier reference exists exactly on post-assignment statuses
//   - orders are never deleted, only soft-archived once terminal
package order
