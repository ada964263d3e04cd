package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockModelInvoker struct {
	mock.Mock
}

func (m *MockModelInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockModelInvoker) Model() string {
	args := m.Called()
	return args.String(0)
}
