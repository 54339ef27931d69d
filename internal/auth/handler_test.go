package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

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

func loginRouter(t *testing.T) (*gin.Engine, *token.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := token.NewService("test-secret")
	assert.NoError(t, err)

	r := gin.New()
	r.POST("/auth", Login(tokens))
	return r, tokens
}

func userRow(t *testing.T, password string) *sqlmock.Rows {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return sqlmock.NewRows([]string{"id", "account", "password", "created_at"}).
		AddRow(1, "alice", string(hashed), time.Now())
}

func TestLoginSuccess(t *testing.T) {
	mock := setupMockDB(t)
	r, tokens := loginRouter(t)

	mock.ExpectQuery(`SELECT`).
		WithArgs("alice", 1).
		WillReturnRows(userRow(t, "pw1234"))

	req := httptest.NewRequest(http.MethodPost, "/auth",
		strings.NewReader(`{"account":"alice","password":"pw1234"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])

	account, err := tokens.Verify(body["token"].(string))
	assert.NoError(t, err)
	assert.Equal(t, "alice", account)
}

func TestLoginIncorrectPassword(t *testing.T) {
	mock := setupMockDB(t)
	r, _ := loginRouter(t)

	mock.ExpectQuery(`SELECT`).
		WithArgs("alice", 1).
		WillReturnRows(userRow(t, "pw1234"))

	req := httptest.NewRequest(http.MethodPost, "/auth",
		strings.NewReader(`{"account":"alice","password":"wrong"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "Incorrect password.", body["message"])
}

func TestLoginUnknownAccount(t *testing.T) {
	mock := setupMockDB(t)
	r, _ := loginRouter(t)

	mock.ExpectQuery(`SELECT`).
		WithArgs("ghost", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account", "password", "created_at"}))

	req := httptest.NewRequest(http.MethodPost, "/auth",
		strings.NewReader(`{"account":"ghost","password":"pw1234"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "Not exist user.", body["message"])
}

func TestLoginMissingFields(t *testing.T) {
	setupMockDB(t)
	r, _ := loginRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/auth",
		strings.NewReader(`{"account":"alice"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Account and password are required.", body["message"])
}
