package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"clinic-management-server/internal/config"
	"clinic-management-server/internal/models"
	"clinic-management-server/internal/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:                 "test_jwt_secret",
		JWTRefreshSecret:          "test_refresh_secret",
		JWTExpirationMinutes:      15,
		JWTRefreshExpirationHours: 168,
	}
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

// performRefresh drives the refresh endpoint with a valid rotation
// candidate already present in the mocked store.
func performRefresh(t *testing.T, db *gorm.DB, cfg *config.Config, refreshToken string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAuthHandler(db, cfg)
	router.POST("/auth/refresh-token", handler.RefreshToken)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: refreshToken})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func expectTokenAndUserLookups(mock sqlmock.Sqlmock, user models.User, refreshToken string) {
	mock.ExpectQuery("SELECT (.+) FROM `refresh_tokens`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token", "expires_at", "is_revoked"}).
			AddRow("token-row-1", user.ID, refreshToken, time.Now().Add(time.Hour), false))
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role"}).
			AddRow(user.ID, user.Email, string(user.Role)))
}

func TestRefreshTokenRotatesPair(t *testing.T) {
	cfg := testConfig()
	user := models.User{
		BaseModel: models.BaseModel{ID: "11111111-2222-3333-4444-555555555555"},
		Email:     "admin@clinic.test",
		Role:      models.RoleAdmin,
	}
	_, refreshToken, err := utils.GenerateTokens(&user, cfg)
	require.NoError(t, err)

	db, mock := setupMockDB(t)
	expectTokenAndUserLookups(mock, user, refreshToken)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `refresh_tokens`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `refresh_tokens`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := performRefresh(t, db, cfg, refreshToken)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "refresh_token=")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRevocationFailureBlocksNewPair(t *testing.T) {
	cfg := testConfig()
	user := models.User{
		BaseModel: models.BaseModel{ID: "11111111-2222-3333-4444-555555555555"},
		Email:     "admin@clinic.test",
		Role:      models.RoleAdmin,
	}
	_, refreshToken, err := utils.GenerateTokens(&user, cfg)
	require.NoError(t, err)

	db, mock := setupMockDB(t)
	expectTokenAndUserLookups(mock, user, refreshToken)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `refresh_tokens`").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	w := performRefresh(t, db, cfg, refreshToken)

	// No new pair may be issued while the old token is still live.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Header().Get("Set-Cookie"), "refresh_token=")
	assert.NoError(t, mock.ExpectationsWereMet())
}
