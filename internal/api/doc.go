// Package api exposes the task service over GraphQL.
//
// The schema in schema.graphql is executed by graph-gophers/graphql-go.
// Resolvers translate GraphQL arguments into service inputs and present every
// failure as a GraphQL error whose message carries one of the prefixes
// "Validation failed: ", "Invalid argument: ", "Request canceled: " or
// "Unexpected execution error: ", with a matching extensions.code.
//
// GraphQLHandler is the HTTP entry point; it also removes null optional
// fields from task objects before the response is written.
package api
