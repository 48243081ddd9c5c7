// Package domain contains the core entities of the question API.
//
// This package defines:
//   - QuestionID, the validated non-empty identifier
//   - Question, the stored record
//
// # Design Philosophy
//
// Domain types are persistence-agnostic. The memory, postgres and redis
// backends all store the same Question value and the HTTP layer renders it
// with the JSON tags declared here.
package domain
