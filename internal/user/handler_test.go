package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gin-gonic/gin"

	"github.com/h662/x-clone-go/internal/database"
	"github.com/h662/x-clone-go/internal/token"
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

func registerRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := token.NewService("test-secret")
	assert.NoError(t, err)

	r := gin.New()
	r.POST("/user", Register(tokens))
	return r
}

func TestRegisterSuccess(t *testing.T) {
	mock := setupMockDB(t)
	r := registerRouter(t)

	mock.ExpectQuery(`SELECT`).
		WithArgs("alice", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account", "password", "created_at"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	req := httptest.NewRequest(http.MethodPost, "/user",
		strings.NewReader(`{"account":"alice","password":"pw1234"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])

	// The token from registration must verify back to the new account.
	tokens, err := token.NewService("test-secret")
	assert.NoError(t, err)
	account, err := tokens.Verify(body["token"].(string))
	assert.NoError(t, err)
	assert.Equal(t, "alice", account)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateAccount(t *testing.T) {
	mock := setupMockDB(t)
	r := registerRouter(t)

	// Existing row found; no INSERT may follow.
	mock.ExpectQuery(`SELECT`).
		WithArgs("alice", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account", "password", "created_at"}).
			AddRow(1, "alice", "$2a$10$existinghash", time.Now()))

	req := httptest.NewRequest(http.MethodPost, "/user",
		strings.NewReader(`{"account":"alice","password":"pw1234"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "Already exist user.", body["message"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterMissingFields(t *testing.T) {
	setupMockDB(t)
	r := registerRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "no password", body: `{"account":"alice"}`},
		{name: "no account", body: `{"password":"pw1234"}`},
		{name: "empty body", body: `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/user", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["ok"])
			assert.Equal(t, "Not exist data.", body["message"])
		})
	}
}
