package postgres

import (
	"context"
	"database/sql"

	"upgradedash/internal/model"
	"upgradedash/internal/repository"
)

// UploadPostgres is a PostgreSQL implementation of repository.UploadRepository.
type UploadPostgres struct {
	db *sql.DB
}

// NewUploadPostgres creates a new UploadPostgres repository.
func NewUploadPostgres(db *sql.DB) *UploadPostgres {
	return &UploadPostgres{db: db}
}

var _ repository.UploadRepository = (*UploadPostgres)(nil)

// Create inserts a new upload audit row and returns the stored record.
func (r *UploadPostgres) Create(ctx context.Context, up *model.Upload) (*model.Upload, error) {
	const q = `
		INSERT INTO csv_uploads (id, filename, storage_path, size, inserted, updated, total, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, filename, storage_path, size, inserted, updated, total, uploaded_by, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		up.ID,
		up.Filename,
		up.StoragePath,
		up.Size,
		up.Inserted,
		up.Updated,
		up.Total,
		up.UploadedBy,
	)
	var out model.Upload
	if err := row.Scan(
		&out.ID,
		&out.Filename,
		&out.StoragePath,
		&out.Size,
		&out.Inserted,
		&out.Updated,
		&out.Total,
		&out.UploadedBy,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single upload by its ID.
func (r *UploadPostgres) FindByID(ctx context.Context, id string) (*model.Upload, error) {
	const q = `
		SELECT id, filename, storage_path, size, inserted, updated, total, uploaded_by, created_at
		FROM csv_uploads
		WHERE id = $1
	`
	var up model.Upload
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&up.ID,
		&up.Filename,
		&up.StoragePath,
		&up.Size,
		&up.Inserted,
		&up.Updated,
		&up.Total,
		&up.UploadedBy,
		&up.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &up, nil
}

// List returns uploads using LIMIT/OFFSET pagination and a total count.
func (r *UploadPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Upload], error) {
	const qCount = `SELECT COUNT(*) FROM csv_uploads`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, filename, storage_path, size, inserted, updated, total, uploaded_by, created_at
		FROM csv_uploads
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Upload, 0)
	for rows.Next() {
		var up model.Upload
		if err := rows.Scan(
			&up.ID,
			&up.Filename,
			&up.StoragePath,
			&up.Size,
			&up.Inserted,
			&up.Updated,
			&up.Total,
			&up.UploadedBy,
			&up.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, up)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Upload]{
		Items: items,
		Total: total,
	}, nil
}
