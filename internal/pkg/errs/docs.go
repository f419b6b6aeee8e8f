// Package errs provides standardized error types for the dispatch service.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Two families live here:
//   - Generic validation errors (ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError) raised by constructors
//     and repositories.
//   - Dispatch errors (InvalidTransitionError, OrderNotAssignableError,
//     CourierUnavailableError, OrderNotPayableError, AlreadyPaidError,
//     UnauthorizedError) raised by the domain when a business rule rejects
//     an operation.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions, with and without cause where applicable
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so callers classify with
//     errors.Is and the HTTP layer maps sentinels to status codes
package errs
