package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pulse-api/config"
	"pulse-api/database"
	"pulse-api/models"
	"pulse-api/routes"
	"pulse-api/services"
	"pulse-api/utils"
)

const testJWTSecret = "test-secret"

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	gin.SetMode(gin.TestMode)
	utils.RegisterValidations()

	// A named shared in-memory database so every pooled connection sees the
	// same data.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, zap.NewNop()))

	cfg := &config.Config{
		JWTSecret: testJWTSecret,
		// Unroutable SMTP endpoint; mail sending fails fast and is
		// non-fatal everywhere it is used.
		SMTPHost: "127.0.0.1",
		SMTPPort: 1,
	}

	router := gin.New()
	routes.SetupRoutes(router, db, cfg, zap.NewNop(), services.NewMailer(cfg), services.NewTrendingCache(nil))

	return &testServer{router: router, db: db}
}

func (ts *testServer) createUser(t *testing.T, id, username string) models.User {
	t.Helper()

	user := models.User{
		ID:            id,
		Name:          "User " + username,
		Username:      username,
		Email:         username + "@example.com",
		Password:      "$2a$10$dummy",
		EmailVerified: true,
	}
	require.NoError(t, ts.db.Create(&user).Error)
	return user
}

func (ts *testServer) createPost(t *testing.T, id, authorID, content string, createdAt time.Time) models.Post {
	t.Helper()

	post := models.Post{
		ID:        id,
		AuthorID:  authorID,
		Content:   content,
		Published: true,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, ts.db.Create(&post).Error)
	return post
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

// request performs an HTTP request against the test router. An empty userID
// means an anonymous call.
func (ts *testServer) request(t *testing.T, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, userID))
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (ts *testServer) postLikesCount(t *testing.T, postID string) int {
	t.Helper()

	var post models.Post
	require.NoError(t, ts.db.First(&post, "id = ?", postID).Error)
	return post.LikesCount
}
