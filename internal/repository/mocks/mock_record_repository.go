package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"upgradedash/internal/model"
	"upgradedash/internal/repository"
)

type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) UpsertBatch(ctx context.Context, records []model.Record) (repository.UpsertResult, error) {
	args := m.Called(ctx, records)
	return args.Get(0).(repository.UpsertResult), args.Error(1)
}

func (m *MockRecordRepository) Query(ctx context.Context, f repository.RecordFilter) ([]model.Record, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Record), args.Error(1)
}

func (m *MockRecordRepository) DistinctValues(ctx context.Context, field string) ([]string, error) {
	args := m.Called(ctx, field)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRecordRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
