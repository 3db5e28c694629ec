// Package store defines the persistence gateway for tasks. The TaskStore
// interface abstracts the storage engine (PostgreSQL, SQLite, or memory) from
// the lifecycle service, and the errors here are the vocabulary every backend
// uses to report missing, duplicate, or rejected records.
package store
