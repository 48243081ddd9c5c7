// Package errors provides the application error taxonomy for the question API.
//
// The taxonomy is closed and flat. Every failure the repository or the HTTP
// boundary can produce is one of:
//
//   - InvalidInput: Malformed identifier or request body (400)
//   - MissingParameters: Range listing requested with only one bound (400)
//   - InvalidRange: Non-numeric, negative or inverted range bounds (400)
//   - NotFound: Question does not exist or range exceeds the record count (404)
//   - Backend: Storage failure, wraps the driver cause (500)
//
// Internal and RateLimited are used by the outer middleware only.
//
// # Usage
//
//	return apperrors.NotFound("Question")
//	return apperrors.Backend(fmt.Errorf("failed to insert question: %w", err))
//
// Check error types anywhere in a wrapped chain:
//
//	if apperrors.IsNotFound(err) {
//	    // Handle not found
//	}
package errors
