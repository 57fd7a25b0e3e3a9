package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"wechat-ai-bot/config"
	"wechat-ai-bot/middleware"
	"wechat-ai-bot/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func adminTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{Secret: "test-jwt-secret", ExpireTime: time.Hour},
	}
}

func adminColumns() []string {
	return []string{"id", "username", "password", "created_at", "updated_at"}
}

func TestAdminLogin(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := adminTestConfig()
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()
	middleware.InitJWT(cfg)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `admin_users`").
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows(adminColumns()).
			AddRow(1, "admin", string(hash), now, now))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/admin/login", NewAdminHandler(cfg).Login)

	body := `{"username":"admin","password":"secret123"}`
	req := httptest.NewRequest("POST", "/admin/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok)
	token, _ := data["token"].(string)
	assert.NotEmpty(t, token)

	// 签发的 token 可解析
	claims, err := middleware.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminLoginWrongPassword(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := adminTestConfig()
	middleware.InitJWT(cfg)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `admin_users`").
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows(adminColumns()).
			AddRow(1, "admin", string(hash), now, now))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/admin/login", NewAdminHandler(cfg).Login)

	body := `{"username":"admin","password":"wrong"}`
	req := httptest.NewRequest("POST", "/admin/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminLoginUnknownUser(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := adminTestConfig()
	middleware.InitJWT(cfg)

	mock.ExpectQuery("SELECT .* FROM `admin_users`").
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows(adminColumns()))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/admin/login", NewAdminHandler(cfg).Login)

	body := `{"username":"nobody","password":"x"}`
	req := httptest.NewRequest("POST", "/admin/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminListMessages(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `messages`").
		WithArgs("user1").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))
	mock.ExpectQuery("SELECT .* FROM `messages`").
		WithArgs("user1").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "from_user", "request", "response", "ai_type", "status", "created_at", "updated_at"}).
			AddRow(2, "user1", "q2", "a2", models.AITypeText, models.StatusAnswered, now, now).
			AddRow(1, "user1", "q1", "a1", models.AITypeText, models.StatusAnswered, now, now))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin/messages", NewAdminHandler(adminTestConfig()).ListMessages)

	req := httptest.NewRequest("GET", "/admin/messages?from_user=user1&page=1&page_size=20", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])
	list := data["list"].([]interface{})
	assert.Len(t, list, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminDeleteMessage(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `messages`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "from_user", "request", "response", "ai_type", "status", "created_at", "updated_at"}).
			AddRow(1, "user1", "q1", "a1", models.AITypeText, models.StatusAnswered, now, now))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `messages`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.DELETE("/admin/messages/:id", NewAdminHandler(adminTestConfig()).DeleteMessage)

	req := httptest.NewRequest("DELETE", "/admin/messages/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
