package policy

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/h662/x-clone-go/internal/apperr"
	"github.com/h662/x-clone-go/internal/database"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	originalDB := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = originalDB })

	return mock
}

func TestAuthorizeOwner(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT`).
		WithArgs("alice", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account", "password", "created_at"}).
			AddRow(7, "alice", "hash", time.Now()))

	assert.NoError(t, Authorize("alice", 7))
}

func TestAuthorizeNotOwner(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT`).
		WithArgs("alice", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account", "password", "created_at"}).
			AddRow(7, "alice", "hash", time.Now()))

	err := Authorize("alice", 8)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrNotOwner)

	var ae *apperr.Error
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.Forbidden, ae.Kind)
	assert.Equal(t, "Can not access.", ae.Message)
}

func TestAuthorizeUnknownCaller(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT`).
		WithArgs("ghost", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account", "password", "created_at"}))

	err := Authorize("ghost", 7)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCaller)

	// Same outward shape as the not-owner denial.
	var ae *apperr.Error
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.Forbidden, ae.Kind)
	assert.Equal(t, "Can not access.", ae.Message)
}
