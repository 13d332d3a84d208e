package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mverdier/driver-management-api/internal/models"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

// The audit row must land before the value update, inside one
// transaction. Expectations here are ordered, so a reversed write order
// fails the test.
func TestUpdateValue_AuditRowWrittenFirst(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRatingRepository(db)

	oldValue := 3
	rating := &models.Rating{ID: 42, Value: &oldValue}
	changedAt := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `rating_histories`").
		WithArgs(42, 3, 5, changedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `ratings` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateValue(rating, 5, changedAt)
	require.NoError(t, err)
	require.NotNil(t, rating.Value)
	require.Equal(t, 5, *rating.Value)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateValue_RollsBackWhenAuditFails(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRatingRepository(db)

	oldValue := 3
	rating := &models.Rating{ID: 42, Value: &oldValue}
	changedAt := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

	auditErr := errors.New("insert denied")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `rating_histories`").
		WillReturnError(auditErr)
	mock.ExpectRollback()

	err := repo.UpdateValue(rating, 5, changedAt)
	require.ErrorIs(t, err, auditErr)

	// Value untouched on rollback
	require.Equal(t, 3, *rating.Value)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithHistory_NullValueSkipsAudit(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRatingRepository(db)

	rating := &models.Rating{
		RatedAt:     time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
		RaterID:     1,
		DriverID:    2,
		CriterionID: 3,
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `ratings`").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()

	err := repo.CreateWithHistory(rating, time.Now())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
