// Package payment implements the payment attempt aggregate. Each attempt
// pays for exactly one order; the at-most-one-settlement-per-order rule is
// enforced by the payment command handlers over the repository, while the
// aggregate owns the attempt's own pending/success/failed lifecycle and the
// idempotent provider confirmation.
package payment
