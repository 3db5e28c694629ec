// Package mocks provides shared function-field mocks for the service and
// store interfaces.
//
// Each mock calls its Fn field when set and otherwise returns its default
// values, so a test only wires the behaviour it cares about:
//
//	svc := &mocks.MockTaskService{
//	    ListTasksFn: func(ctx context.Context) ([]service.TaskDTO, error) {
//	        return nil, errors.New("boom")
//	    },
//	}
package mocks
