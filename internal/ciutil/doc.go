// Package ciutil detects CI environments and resolves environment variables
// that have more than one accepted name, such as the integration test
// database URL.
package ciutil
