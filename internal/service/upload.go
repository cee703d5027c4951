package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"upgradedash/internal/ingest"
	"upgradedash/internal/model"
	"upgradedash/internal/repository"
	"upgradedash/internal/storage"
)

var (
	ErrUploadIDRequired = errors.New("upload id is required")
	ErrUploadNotFound   = errors.New("upload not found")
)

// presignExpiry bounds download links for archived CSV files.
const presignExpiry = 15 * time.Minute

// UploadSummary reports one processed CSV batch. ArchiveError is set when
// the records were committed but archiving the raw file (or its audit row)
// failed; the batch itself is not rolled back in that case.
type UploadSummary struct {
	repository.UpsertResult
	UploadID     string `json:"upload_id,omitempty"`
	ArchiveError string `json:"archive_error,omitempty"`
}

// UploadListResult is the service-level DTO for paginated upload history.
type UploadListResult struct {
	Items []model.Upload `json:"data"`
	Total int            `json:"total"`
}

// UploadService defines the CSV ingestion use cases.
type UploadService interface {
	// ProcessCSV runs the full ingestion pipeline on one uploaded file:
	// parse and map rows, upsert the batch, then archive the raw bytes to
	// object storage with an audit row. Parse and upsert failures abort the
	// request; archive failures after a committed batch are reported in the
	// summary instead (re-uploading the same file is idempotent).
	ProcessCSV(ctx context.Context, data []byte, filename, uploadedBy string) (*UploadSummary, error)

	// List returns upload history using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*UploadListResult, error)

	// PresignDownload returns a time-limited URL for an archived file.
	PresignDownload(ctx context.Context, id string) (string, error)
}

type uploadService struct {
	records repository.RecordRepository
	uploads repository.UploadRepository
	store   storage.Storage
}

// NewUploadService constructs a new UploadService.
func NewUploadService(records repository.RecordRepository, uploads repository.UploadRepository, store storage.Storage) UploadService {
	return &uploadService{records: records, uploads: uploads, store: store}
}

func (s *uploadService) ProcessCSV(ctx context.Context, data []byte, filename, uploadedBy string) (*UploadSummary, error) {
	records, err := ingest.ParseCSV(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	res, err := s.records.UpsertBatch(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("upsert batch: %w", err)
	}

	summary := &UploadSummary{UpsertResult: res}

	id := uuid.New().String()
	key := "uploads/" + id + ".csv"
	_, err = s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: "text/csv",
		Metadata: map[string]string{
			"original-filename": filename,
			"uploaded-by":       uploadedBy,
		},
	})
	if err != nil {
		summary.ArchiveError = fmt.Sprintf("archive to storage: %v", err)
		return summary, nil
	}

	stored, err := s.uploads.Create(ctx, &model.Upload{
		ID:          id,
		Filename:    filename,
		StoragePath: key,
		Size:        int64(len(data)),
		Inserted:    res.Inserted,
		Updated:     res.Updated,
		Total:       res.Total,
		UploadedBy:  uploadedBy,
	})
	if err != nil {
		// Keep archive and audit consistent: drop the orphaned object.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			summary.ArchiveError = fmt.Sprintf("audit row failed: %v; cleanup delete failed: %v", err, delErr)
			return summary, nil
		}
		summary.ArchiveError = fmt.Sprintf("audit row failed: %v", err)
		return summary, nil
	}

	summary.UploadID = stored.ID
	return summary, nil
}

// List returns paginated upload history without exposing repository types.
func (s *uploadService) List(ctx context.Context, limit, offset int) (*UploadListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.uploads.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &UploadListResult{Items: res.Items, Total: res.Total}, nil
}

// PresignDownload resolves the archived object for an upload and returns a
// pre-signed download URL.
func (s *uploadService) PresignDownload(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", ErrUploadIDRequired
	}
	up, err := s.uploads.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUploadNotFound
		}
		return "", err
	}
	return s.store.PresignGet(ctx, up.StoragePath, presignExpiry)
}
