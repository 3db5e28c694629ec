package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateTime is the DateTime scalar. It is always rendered in UTC.
type DateTime struct {
	time.Time
}

// ImplementsGraphQLType maps this custom Go type
// to the graphql scalar type in the schema.
func (DateTime) ImplementsGraphQLType(name string) bool {
	return name == "DateTime"
}

// UnmarshalGraphQL is a custom unmarshaler for DateTime.
func (t *DateTime) UnmarshalGraphQL(input interface{}) error {
	switch input := input.(type) {
	case time.Time:
		t.Time = input.UTC()
		return nil
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, input)
		if err != nil {
			return fmt.Errorf("invalid DateTime %q: %w", input, err)
		}
		t.Time = parsed.UTC()
		return nil
	default:
		return fmt.Errorf("wrong type for DateTime: %T", input)
	}
}

// MarshalJSON renders the time as RFC 3339 with fractional seconds.
func (t DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// UUID is the UUID scalar. Input values are kept verbatim so that malformed
// ids reach request validation instead of failing argument coercion.
type UUID string

// ImplementsGraphQLType maps this custom Go type
// to the graphql scalar type in the schema.
func (UUID) ImplementsGraphQLType(name string) bool {
	return name == "UUID"
}

// UnmarshalGraphQL is a custom unmarshaler for UUID.
func (u *UUID) UnmarshalGraphQL(input interface{}) error {
	s, ok := input.(string)
	if !ok {
		return fmt.Errorf("wrong type for UUID: %T", input)
	}
	*u = UUID(s)
	return nil
}

// MarshalJSON renders the UUID as a JSON string.
func (u UUID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(u))
}
