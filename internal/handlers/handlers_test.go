package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/worklet-dev/worklet/db"
	"github.com/worklet-dev/worklet/internal/auth"
	"github.com/worklet-dev/worklet/internal/models"
	"github.com/worklet-dev/worklet/internal/router"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) (*gin.Engine, string, models.User) {
	t.Setenv("JWT_SECRET", "test-secret")
	assert.NoError(t, auth.InitJWTSecret())
	gin.SetMode(gin.TestMode)

	gormDB, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "worklet.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	db.DB = gormDB
	assert.NoError(t, db.MigrateDatabase())

	user := models.User{Name: "Test User", Email: "test@example.com", PasswordHash: "unused"}
	assert.NoError(t, db.DB.Create(&user).Error)

	token, err := auth.GenerateJWT(user.ID, user.Email)
	assert.NoError(t, err)

	return router.NewRouter(), token, user
}

func doJSON(t *testing.T, r *gin.Engine, token, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader

	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, path, reader)
	assert.NoError(t, err)

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func createProject(t *testing.T, ownerID uint, estimate string) models.Project {
	project := models.Project{
		Title:             "Thesis",
		Description:       "Write the thing",
		EstimatedDuration: estimate,
		OwnerID:           ownerID,
	}
	assert.NoError(t, db.DB.Create(&project).Error)
	return project
}

func TestRegisterAndLogin(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := doJSON(t, r, "", "POST", "/api/auth/register",
		`{"name":"Ada","email":"ada@example.com","password":"longenough"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"ada@example.com"`)

	w = doJSON(t, r, "", "POST", "/api/auth/login",
		`{"email":"ada@example.com","password":"longenough"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var loginResp struct {
		Token string `json:"token"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	assert.NotEmpty(t, loginResp.Token)

	w = doJSON(t, r, "", "POST", "/api/auth/login",
		`{"email":"ada@example.com","password":"wrongwrong"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, loginResp.Token, "GET", "/api/auth/me", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Ada"`)
}

func TestAuthRequired(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := doJSON(t, r, "", "GET", "/api/projects", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateUserName(t *testing.T) {
	r, token, user := setupRouter(t)

	w := doJSON(t, r, token, "PATCH", "/api/auth/me", `{"name":"Renamed"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var dbUser models.User
	assert.NoError(t, db.DB.First(&dbUser, user.ID).Error)
	assert.Equal(t, "Renamed", dbUser.Name)
}

func TestDeleteUser(t *testing.T) {
	r, token, user := setupRouter(t)

	w := doJSON(t, r, token, "POST", "/api/users/delete", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing UID")

	w = doJSON(t, r, token, "POST", "/api/users/delete", `{"uid":"99999"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, token, "POST", "/api/users/delete", fmt.Sprintf(`{"uid":"%d"}`, user.ID))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "User deleted")

	err := db.DB.First(&models.User{}, user.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
