// Package courier implements the courier profile aggregate: account standing,
// availability, vehicle, last reported position, rating average, the recent
// assignment outcome window and the active delivery load.
//
// The aggregate enforces its own state (a suspended courier is never
// available, ratings stay consistent with their count); order-relative
// eligibility such as search radius or vehicle fit lives in the dispatch
// services.
package courier
