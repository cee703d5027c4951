package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"upgradedash/internal/service"
)

// MockUploadService is a testify mock for service.UploadService.
type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) ProcessCSV(ctx context.Context, data []byte, filename, uploadedBy string) (*service.UploadSummary, error) {
	args := m.Called(ctx, data, filename, uploadedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadSummary), args.Error(1)
}

func (m *MockUploadService) List(ctx context.Context, limit, offset int) (*service.UploadListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadListResult), args.Error(1)
}

func (m *MockUploadService) PresignDownload(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
