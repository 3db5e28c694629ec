// Package service contains the application use cases over tasks. It
// orchestrates interactions between the validation layer, the domain Task
// entity and the persistence gateway defined in internal/store.
//
// The TaskService interface exposes exactly three use cases:
//
//   - CreateTask validates input, constructs a pending task and persists it.
//   - ListTasks returns every task in creation order.
//   - UpdateTaskStatus validates input, loads the task, applies the status
//     transition and persists it. A missing task yields a nil result.
//
// Results are returned as TaskDTO values, copied verbatim from the entity.
// The service depends only on the store interfaces, never on a specific
// storage backend.
package service
