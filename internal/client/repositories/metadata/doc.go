// Package metadata provides the key/value persistence layer the client keeps
// its session in.
//
// # Implementations
//
//   - SQLiteRepository: a local database file; the table is created by the
//     embedded goose migrations (see client.InitDatabase).
//   - RedisRepository: a shared Redis instance; keys are namespaced with a
//     prefix so several tools can share one database.
//   - MemoryRepository: process memory only, used by tests and -s memory.
//
// All implementations follow the same contract: Get returns (nil, nil) for an
// absent key, Set is an upsert, Delete and Clear are idempotent.
package metadata
