package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nwptourism/internal/models/db_models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

var feedbackColumns = []string{"id", "created_at", "name", "comment", "latitude", "longitude", "image_url", "status"}

func TestListFeedbackNewestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFeedbackRepository(db)

	newer, older := uuid.New(), uuid.New()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	url := "https://img.example/1.jpg"

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "feedback" ORDER BY created_at DESC`)).
		WillReturnRows(sqlmock.NewRows(feedbackColumns).
			AddRow(newer.String(), now, "Nimal", "Lovely lake", 7.8, 80.5, url, "pending").
			AddRow(older.String(), now.Add(-time.Hour), "Kamala", "Busy", 7.5, 80.1, nil, "approved"))

	items, err := repo.ListFeedback(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, newer, items[0].ID)
	assert.Equal(t, "Nimal", items[0].Name)
	require.NotNil(t, items[0].ImageURL)
	assert.Equal(t, url, *items[0].ImageURL)
	assert.Equal(t, db_models.FeedbackPending, items[0].Status)

	assert.Equal(t, older, items[1].ID)
	assert.Nil(t, items[1].ImageURL)
	assert.Equal(t, db_models.FeedbackApproved, items[1].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateFeedbackStatus(t *testing.T) {
	updateSQL := regexp.QuoteMeta(`UPDATE "feedback" SET "status"=$1 WHERE id = $2`)
	id := uuid.New()
	dbErr := errors.New("connection reset")

	tests := []struct {
		name    string
		expect  func(sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "updated",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(updateSQL).
					WithArgs(db_models.FeedbackRejected, id).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "no row with that id",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(updateSQL).
					WithArgs(db_models.FeedbackRejected, id).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectCommit()
			},
			wantErr: gorm.ErrRecordNotFound,
		},
		{
			name: "database failure",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(updateSQL).WillReturnError(dbErr)
				mock.ExpectRollback()
			},
			wantErr: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.expect(mock)

			err := NewFeedbackRepository(db).UpdateStatus(context.Background(), id, db_models.FeedbackRejected)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCountByCategory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssetRepository(db)

	mock.ExpectQuery(`SELECT category, COUNT\(\*\) AS count FROM "tourism_assets" GROUP BY "?category"? ORDER BY count DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"category", "count"}).
			AddRow("nature", 3).
			AddRow("urban", 1))

	counts, err := repo.CountByCategory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []CategoryCount{{Category: "nature", Count: 3}, {Category: "urban", Count: 1}}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAssets(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssetRepository(db)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tourism_assets" ORDER BY created_at ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "name", "category", "description", "latitude", "longitude", "image_url"}).
			AddRow(id.String(), time.Now(), "Yapahuwa", "heritage", nil, 7.82, 80.31, nil))

	assets, err := repo.ListAssets(context.Background())
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, id, assets[0].ID)
	assert.Equal(t, "heritage", assets[0].Category)
	assert.Nil(t, assets[0].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminUserUpsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdminUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "admin_users" .+ ON CONFLICT \("username"\) DO UPDATE SET "password_hash"="excluded"."password_hash"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	user := &db_models.AdminUser{Username: "admin", PasswordHash: "$2a$10$hash"}
	require.NoError(t, repo.Upsert(context.Background(), user))
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAdminByUsername(t *testing.T) {
	findSQL := `SELECT \* FROM "admin_users" WHERE username = \$1 ORDER BY "admin_users"."id" LIMIT`

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		id := uuid.New()
		mock.ExpectQuery(findSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "username", "password_hash"}).
				AddRow(id.String(), time.Now(), "admin", "$2a$10$hash"))

		user, err := NewAdminUserRepository(db).FindByUsername(context.Background(), "admin")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "$2a$10$hash", user.PasswordHash)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user is not an error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(findSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "username", "password_hash"}))

		user, err := NewAdminUserRepository(db).FindByUsername(context.Background(), "ghost")
		require.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
