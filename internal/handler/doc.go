// Package handler contains the HTTP handlers of the question API.
//
// Handlers decode and validate requests, call the question store and
// encode results. They return errors instead of writing failure bodies;
// ErrorHandler renders every error as {"error": "<message>"} with the
// status carried by the AppError.
//
// # Routes
//
//	GET    /questions            list, or a slice with ?start=&end=
//	GET    /questions/:id        one question
//	POST   /questions            create (201 "Question added")
//	PUT    /questions/:id        replace (200 "Question updated")
//	DELETE /questions/:id        delete ({"message":"Question deleted"})
//
// Operational routes (/health, /livez, /readyz, /version) come from
// HealthHandler and API docs from DocsHandler. Anything unmatched gets
// NotFound, a plain-text 404.
package handler
