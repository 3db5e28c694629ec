// Package domain contains the core business entities and domain errors of the
// application. The Task entity owns its invariants: identity and creation time
// are fixed at construction, titles are never blank, and the completion
// timestamp tracks the completed status. Nothing here depends on storage or
// transport concerns.
package domain
