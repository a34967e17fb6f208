package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	databases "github.com/linesmerrill/prosecution-case-api/databases"
)

// ClientHelper is a mock type for the ClientHelper type
type ClientHelper struct {
	mock.Mock
}

// Connect provides a mock function with given fields: ctx
func (_m *ClientHelper) Connect(ctx context.Context) error {
	ret := _m.Called(ctx)

	return ret.Error(0)
}

// Database provides a mock function with given fields: _a0
func (_m *ClientHelper) Database(_a0 string) databases.DatabaseHelper {
	ret := _m.Called(_a0)

	var r0 databases.DatabaseHelper
	if rf, ok := ret.Get(0).(func(string) databases.DatabaseHelper); ok {
		r0 = rf(_a0)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(databases.DatabaseHelper)
	}

	return r0
}

// Disconnect provides a mock function with given fields: ctx
func (_m *ClientHelper) Disconnect(ctx context.Context) error {
	ret := _m.Called(ctx)

	return ret.Error(0)
}
