package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Hack4Impact-Boston-University/Ocean-Blue-Backend/internal/users"
)

func setupAuthTest(t *testing.T) (*gin.Engine, *gorm.DB, *TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&users.User{}))

	tokens := NewTokenService("test_secret", time.Hour)
	h := &Handler{DB: db, Tokens: tokens}

	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/signin", h.SignIn)

	protected := r.Group("/", RequireAuth(tokens))
	protected.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	return r, db, tokens
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerBody() map[string]interface{} {
	return map[string]interface{}{
		"username":    gofakeit.Username(),
		"email":       gofakeit.Email(),
		"password":    gofakeit.Password(true, true, true, false, false, 10),
		"birthday":    "2000-01-01",
		"phoneNumber": "555",
		"description": "",
	}
}

func TestRegister_HappyPath(t *testing.T) {
	r, db, tokens := setupAuthTest(t)

	body := registerBody()
	w := postJSON(t, r, "/register", body)
	require.Equal(t, http.StatusOK, w.Code)

	// response is the JSON-encoded token string
	var tok string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))

	claims, err := tokens.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, body["username"], claims.Username)
	assert.False(t, claims.Admin)
	assert.False(t, claims.CrewLeader)

	var stored users.User
	require.NoError(t, db.First(&stored, "email = ?", body["email"]).Error)
	assert.Equal(t, claims.UserID, stored.ID)
	assert.Equal(t, 0, stored.Points)
	assert.Equal(t, 0, stored.Animals)
	assert.Equal(t, 0, stored.EventsCreated)
	assert.Equal(t, 0, stored.EventsParticipated)
	assert.False(t, stored.Admin)
	assert.False(t, stored.CrewLeader)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(body["password"].(string))))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r, db, _ := setupAuthTest(t)

	body := registerBody()
	w := postJSON(t, r, "/register", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/register", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email.", w.Body.String())

	var count int64
	require.NoError(t, db.Model(&users.User{}).Where("email = ?", body["email"]).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSignIn(t *testing.T) {
	r, _, tokens := setupAuthTest(t)

	body := registerBody()
	w := postJSON(t, r, "/register", body)
	require.Equal(t, http.StatusOK, w.Code)

	var registerTok string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registerTok))
	registered, err := tokens.Parse(registerTok)
	require.NoError(t, err)

	w = postJSON(t, r, "/signin", map[string]interface{}{
		"email":    body["email"],
		"password": body["password"],
	})
	require.Equal(t, http.StatusOK, w.Code)

	var tok string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))
	claims, err := tokens.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, claims.UserID)
	assert.Equal(t, body["username"], claims.Username)
	assert.False(t, claims.Admin)
	assert.False(t, claims.CrewLeader)
}

func TestSignIn_BadCredentials(t *testing.T) {
	r, _, _ := setupAuthTest(t)

	body := registerBody()
	w := postJSON(t, r, "/register", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/signin", map[string]interface{}{
		"email":    body["email"],
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid password.", w.Body.String())

	w = postJSON(t, r, "/signin", map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email.", w.Body.String())
}

func TestRequireAuth(t *testing.T) {
	r, _, tokens := setupAuthTest(t)

	get := func(authorization string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	// no token
	assert.Equal(t, http.StatusUnauthorized, get("").Code)

	// not a bearer token
	assert.Equal(t, http.StatusUnauthorized, get("Basic abc").Code)

	// garbage token
	assert.Equal(t, http.StatusUnauthorized, get("Bearer not-a-token").Code)

	tok, err := tokens.Generate(&users.User{ID: 7, Username: "volunteer"})
	require.NoError(t, err)

	// tampered token
	assert.Equal(t, http.StatusUnauthorized, get("Bearer "+tok+"x").Code)

	// expired token
	expired, err := NewTokenService("test_secret", -time.Minute).Generate(&users.User{ID: 7})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get("Bearer "+expired).Code)

	// valid token
	w := get("Bearer " + tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}
