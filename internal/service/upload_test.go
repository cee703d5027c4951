package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"upgradedash/internal/ingest"
	"upgradedash/internal/model"
	"upgradedash/internal/repository"
	repoMocks "upgradedash/internal/repository/mocks"
	"upgradedash/internal/storage"
	storageMocks "upgradedash/internal/storage/mocks"
)

var sampleCSV = []byte("id,nombre,estado,fecha estado\n001,Ana Pérez,realizado,29/09/2025\n002,Luis Soto,pendiente,30/09/2025\n")

func TestUploadService_ProcessCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("success archives the file and writes an audit row", func(t *testing.T) {
		mRecords := new(repoMocks.MockRecordRepository)
		mUploads := new(repoMocks.MockUploadRepository)
		mStore := new(storageMocks.MockStorage)

		mRecords.On("UpsertBatch", ctx, mock.MatchedBy(func(records []model.Record) bool {
			return len(records) == 2 && records[0].RecordID == "001" && records[0].FechaEstado == "2025-09-29"
		})).Return(repository.UpsertResult{Inserted: 2, Updated: 0, Total: 2}, nil)

		mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return len(key) > len("uploads/.csv")
		}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
			return opt.ContentType == "text/csv" &&
				opt.Size == int64(len(sampleCSV)) &&
				opt.Metadata["original-filename"] == "plan.csv" &&
				opt.Metadata["uploaded-by"] == "admin"
		})).Return(storage.ObjectInfo{Key: "uploads/x.csv"}, nil)

		mUploads.On("Create", ctx, mock.MatchedBy(func(up *model.Upload) bool {
			return up.Filename == "plan.csv" && up.Inserted == 2 && up.Total == 2 && up.UploadedBy == "admin"
		})).Return(&model.Upload{ID: "fixed-id"}, nil)

		svc := NewUploadService(mRecords, mUploads, mStore)
		got, err := svc.ProcessCSV(ctx, sampleCSV, "plan.csv", "admin")

		require.NoError(t, err)
		assert.Equal(t, 2, got.Inserted)
		assert.Equal(t, "fixed-id", got.UploadID)
		assert.Empty(t, got.ArchiveError)
		mRecords.AssertExpectations(t)
		mUploads.AssertExpectations(t)
		mStore.AssertExpectations(t)
	})

	t.Run("parse errors abort before any write", func(t *testing.T) {
		mRecords := new(repoMocks.MockRecordRepository)
		svc := NewUploadService(mRecords, new(repoMocks.MockUploadRepository), new(storageMocks.MockStorage))

		_, err := svc.ProcessCSV(ctx, []byte("id,nombre\n,\n"), "plan.csv", "admin")

		assert.ErrorIs(t, err, ingest.ErrNoValidRows)
		mRecords.AssertNotCalled(t, "UpsertBatch", mock.Anything, mock.Anything)
	})

	t.Run("upsert failure is fatal", func(t *testing.T) {
		mRecords := new(repoMocks.MockRecordRepository)
		mStore := new(storageMocks.MockStorage)
		mRecords.On("UpsertBatch", ctx, mock.Anything).Return(repository.UpsertResult{}, assert.AnError)

		svc := NewUploadService(mRecords, new(repoMocks.MockUploadRepository), mStore)
		_, err := svc.ProcessCSV(ctx, sampleCSV, "plan.csv", "admin")

		assert.ErrorIs(t, err, assert.AnError)
		mStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("archive failure after a committed batch is soft", func(t *testing.T) {
		mRecords := new(repoMocks.MockRecordRepository)
		mUploads := new(repoMocks.MockUploadRepository)
		mStore := new(storageMocks.MockStorage)

		mRecords.On("UpsertBatch", ctx, mock.Anything).Return(repository.UpsertResult{Inserted: 2, Total: 2}, nil)
		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, assert.AnError)

		svc := NewUploadService(mRecords, mUploads, mStore)
		got, err := svc.ProcessCSV(ctx, sampleCSV, "plan.csv", "admin")

		require.NoError(t, err)
		assert.Equal(t, 2, got.Inserted)
		assert.Empty(t, got.UploadID)
		assert.Contains(t, got.ArchiveError, "archive to storage")
		mUploads.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("audit row failure deletes the orphaned object", func(t *testing.T) {
		mRecords := new(repoMocks.MockRecordRepository)
		mUploads := new(repoMocks.MockUploadRepository)
		mStore := new(storageMocks.MockStorage)

		mRecords.On("UpsertBatch", ctx, mock.Anything).Return(repository.UpsertResult{Inserted: 2, Total: 2}, nil)
		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
		mUploads.On("Create", ctx, mock.Anything).Return(nil, assert.AnError)
		mStore.On("Delete", ctx, mock.Anything).Return(nil)

		svc := NewUploadService(mRecords, mUploads, mStore)
		got, err := svc.ProcessCSV(ctx, sampleCSV, "plan.csv", "admin")

		require.NoError(t, err)
		assert.Contains(t, got.ArchiveError, "audit row failed")
		mStore.AssertExpectations(t)
	})
}

func TestUploadService_List(t *testing.T) {
	ctx := context.Background()
	mUploads := new(repoMocks.MockUploadRepository)
	mUploads.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
		Return(&repository.PageResult[model.Upload]{Items: []model.Upload{{ID: "a"}}, Total: 1}, nil)

	svc := NewUploadService(new(repoMocks.MockRecordRepository), mUploads, new(storageMocks.MockStorage))
	got, err := svc.List(ctx, 0, -3) // defaults kick in

	require.NoError(t, err)
	assert.Equal(t, 1, got.Total)
	require.Len(t, got.Items, 1)
	mUploads.AssertExpectations(t)
}

func TestUploadService_PresignDownload(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mUploads := new(repoMocks.MockUploadRepository)
		mStore := new(storageMocks.MockStorage)
		mUploads.On("FindByID", ctx, "abc").Return(&model.Upload{ID: "abc", StoragePath: "uploads/abc.csv"}, nil)
		mStore.On("PresignGet", ctx, "uploads/abc.csv", 15*time.Minute).Return("https://minio.local/signed", nil)

		svc := NewUploadService(new(repoMocks.MockRecordRepository), mUploads, mStore)
		url, err := svc.PresignDownload(ctx, "abc")

		require.NoError(t, err)
		assert.Equal(t, "https://minio.local/signed", url)
	})

	t.Run("missing id", func(t *testing.T) {
		svc := NewUploadService(new(repoMocks.MockRecordRepository), new(repoMocks.MockUploadRepository), new(storageMocks.MockStorage))
		_, err := svc.PresignDownload(ctx, "")
		assert.ErrorIs(t, err, ErrUploadIDRequired)
	})

	t.Run("unknown id", func(t *testing.T) {
		mUploads := new(repoMocks.MockUploadRepository)
		mUploads.On("FindByID", ctx, "nope").Return(nil, sql.ErrNoRows)

		svc := NewUploadService(new(repoMocks.MockRecordRepository), mUploads, new(storageMocks.MockStorage))
		_, err := svc.PresignDownload(ctx, "nope")

		assert.ErrorIs(t, err, ErrUploadNotFound)
	})
}
