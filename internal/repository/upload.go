package repository

import (
	"context"

	"upgradedash/internal/model"
)

// UploadRepository defines data access for CSV upload audit entries.
type UploadRepository interface {
	// Create inserts a new upload record.
	Create(ctx context.Context, up *model.Upload) (*model.Upload, error)

	// FindByID returns an upload by its ID. sql.ErrNoRows when absent.
	FindByID(ctx context.Context, id string) (*model.Upload, error)

	// List returns a paginated list of uploads, newest first, plus the total count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Upload], error)
}
