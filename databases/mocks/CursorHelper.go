package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
)

// CursorHelper is a mock type for the CursorHelper type
type CursorHelper struct {
	mock.Mock
}

// All provides a mock function with given fields: ctx, results
func (_m *CursorHelper) All(ctx context.Context, results interface{}) error {
	ret := _m.Called(ctx, results)

	if rf, ok := ret.Get(0).(func(context.Context, interface{}) error); ok {
		return rf(ctx, results)
	}
	return ret.Error(0)
}

// Close provides a mock function with given fields: ctx
func (_m *CursorHelper) Close(ctx context.Context) error {
	ret := _m.Called(ctx)

	return ret.Error(0)
}
