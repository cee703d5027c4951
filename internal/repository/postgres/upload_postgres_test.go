package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upgradedash/internal/model"
	"upgradedash/internal/repository"
)

var uploadRows = []string{"id", "filename", "storage_path", "size", "inserted", "updated", "total", "uploaded_by", "created_at"}

func TestUploadPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUploadPostgres(db)

	up := &model.Upload{
		ID:          "test-uuid",
		Filename:    "avance.csv",
		StoragePath: "uploads/test-uuid.csv",
		Size:        512,
		Inserted:    3,
		Updated:     1,
		Total:       4,
		UploadedBy:  "admin",
	}

	rows := sqlmock.NewRows(uploadRows).
		AddRow(up.ID, up.Filename, up.StoragePath, up.Size, up.Inserted, up.Updated, up.Total, up.UploadedBy, time.Now())

	mock.ExpectQuery("INSERT INTO csv_uploads").
		WithArgs(up.ID, up.Filename, up.StoragePath, up.Size, up.Inserted, up.Updated, up.Total, up.UploadedBy).
		WillReturnRows(rows)

	out, err := repo.Create(context.Background(), up)

	assert.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, up.ID, out.ID)
	assert.Equal(t, 4, out.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUploadPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUploadPostgres(db)

	rows := sqlmock.NewRows(uploadRows).
		AddRow("test-uuid", "avance.csv", "uploads/test-uuid.csv", 512, 3, 1, 4, "admin", time.Now())

	mock.ExpectQuery("SELECT (.+) FROM csv_uploads WHERE id = ?").
		WithArgs("test-uuid").
		WillReturnRows(rows)

	up, err := repo.FindByID(context.Background(), "test-uuid")

	assert.NoError(t, err)
	require.NotNil(t, up)
	assert.Equal(t, "uploads/test-uuid.csv", up.StoragePath)
}

func TestUploadPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUploadPostgres(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM csv_uploads").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows(uploadRows).
		AddRow("test-uuid", "avance.csv", "uploads/test-uuid.csv", 512, 3, 1, 4, "admin", time.Now())

	mock.ExpectQuery("SELECT (.+) FROM csv_uploads ORDER BY").
		WithArgs(10, 0).
		WillReturnRows(rows)

	res, err := repo.List(context.Background(), repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
}
