// Package validator wraps go-playground/validator for request bodies.
//
// Field names in messages are the JSON names, so a missing title reads
// "title is required".
//
//	if err := validator.Validate(req); err != nil {
//	    // err is a validator.ValidationErrors
//	}
//
// The validator instance is package-level and safe for concurrent use.
package validator
