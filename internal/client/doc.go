// Package client is a small GraphQL client for the task API. It speaks the
// same operations as the browser board and is used by the todoctl command.
package client
