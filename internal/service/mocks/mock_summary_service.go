package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"upgradedash/internal/service"
)

// MockSummaryService is a testify mock for service.SummaryService.
type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) Build(ctx context.Context, q service.SummaryQuery) (*service.Summary, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Summary), args.Error(1)
}
