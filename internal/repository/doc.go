// Package repository owns the stored questions.
//
// QuestionRepository keeps the full record set in memory behind a
// read/write lock and writes every mutation through a Backend before
// applying it, so a failed write leaves the in-memory view unchanged.
//
// # Backends
//
// Backend implementations live in sub-packages:
//   - memory: process-local, seeded from a JSON fixture
//   - postgres: one relational table, accessed with pgx
//   - redis: one hash, field per question
//
// Durable backends can be wrapped with NewGuardedBackend, which fails
// fast with a circuit breaker while the store is unreachable.
//
// # Thread Safety
//
// QuestionRepository is safe for concurrent use. Reads share the lock;
// each write holds it exclusively across the backend call and the
// in-memory apply.
package repository
