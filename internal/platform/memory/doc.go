// Package memory provides a process-local implementation of store.TaskStore.
// Data lives only as long as the process and is guarded by a RWMutex, so a
// single store can be shared across request goroutines.
package memory
