// Package sqlite provides the SQLite implementation of store.TaskStore on top
// of the pure-Go modernc.org/sqlite driver. Timestamps are stored as fixed
// width UTC text so that lexical and chronological order agree.
package sqlite
