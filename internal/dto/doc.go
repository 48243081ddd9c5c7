// Package dto contains the request shapes accepted by the HTTP handlers.
//
// Bodies are decoded strictly: unknown fields, trailing data and wrong
// JSON types are rejected, then go-playground/validator checks that the
// required fields are present. Every failure is an InvalidInput AppError.
//
//	var req dto.QuestionRequest
//	if err := dto.DecodeAndValidate(c.Body(), &req); err != nil {
//	    return err
//	}
package dto
