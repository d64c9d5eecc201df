package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/eaglebank/registry/shared/apperr"
	"github.com/eaglebank/registry/shared/cqrs"
	"github.com/eaglebank/registry/shared/middleware"
	"github.com/eaglebank/registry/shared/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ---- mock implementations ----

type mockUserCommander struct {
	registerFn func(cqrs.RegisterUserCommand) (*models.User, error)
}

func (m *mockUserCommander) RegisterUser(_ context.Context, cmd cqrs.RegisterUserCommand) (*models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

type mockAuthQuerier struct {
	loginFn   func(cqrs.LoginCommand) (string, error)
	refreshFn func(cqrs.RefreshTokenCommand) (string, error)
	getUserFn func(cqrs.GetUserQuery) (*models.User, error)
}

func (m *mockAuthQuerier) Login(_ context.Context, cmd cqrs.LoginCommand) (string, error) {
	if m.loginFn != nil {
		return m.loginFn(cmd)
	}
	return "", fmt.Errorf("not configured")
}
func (m *mockAuthQuerier) RefreshToken(_ context.Context, cmd cqrs.RefreshTokenCommand) (string, error) {
	if m.refreshFn != nil {
		return m.refreshFn(cmd)
	}
	return "", fmt.Errorf("not configured")
}
func (m *mockAuthQuerier) GetUser(_ context.Context, q cqrs.GetUserQuery) (*models.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

var testSecret = []byte("test-secret")

func newAuthTestRouter(cmds UserCommander, qrys AuthQuerier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, NewAuthHandler(cmds, qrys), testSecret)
	return r
}

func authDoRequest(router *gin.Engine, method, url string, body interface{}, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if body != nil {
		b, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, url, strings.NewReader(string(b)))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func signedToken(t *testing.T, userID int64, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{
		UserID:   userID,
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	})
	signed, err := token.SignedString(testSecret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

// ---- tests ----

func TestRegister(t *testing.T) {
	tests := []struct {
		name            string
		body            interface{}
		registerFn      func(cqrs.RegisterUserCommand) (*models.User, error)
		expectedStatus  int
		expectedMessage string
	}{
		{
			name: "success - new username",
			body: map[string]string{"username": "alice", "password": "s3cret"},
			registerFn: func(cmd cqrs.RegisterUserCommand) (*models.User, error) {
				return &models.User{ID: 1, Username: cmd.Username}, nil
			},
			expectedStatus:  http.StatusOK,
			expectedMessage: "User registered successfully",
		},
		{
			name: "bad request - username taken",
			body: map[string]string{"username": "alice", "password": "s3cret"},
			registerFn: func(cmd cqrs.RegisterUserCommand) (*models.User, error) {
				return nil, fmt.Errorf("username %q: %w", cmd.Username, apperr.ErrUsernameExists)
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Username already exists",
		},
		{
			name:           "bad request - missing password",
			body:           map[string]string{"username": "alice"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad request - password over 72 bytes in fewer characters",
			body: map[string]string{"username": "alice", "password": strings.Repeat("é", 40)},
			registerFn: func(cmd cqrs.RegisterUserCommand) (*models.User, error) {
				return nil, fmt.Errorf("failed to hash password: bcrypt: password length exceeds 72 bytes")
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid request data",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthTestRouter(&mockUserCommander{registerFn: tt.registerFn}, &mockAuthQuerier{})
			w := authDoRequest(router, http.MethodPost, "/api/users/register", tt.body, "")
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedMessage != "" {
				var resp map[string]string
				_ = json.Unmarshal(w.Body.Bytes(), &resp)
				if resp["message"] != tt.expectedMessage {
					t.Errorf("[%s] expected message %q got %q", tt.name, tt.expectedMessage, resp["message"])
				}
				if _, ok := resp["token"]; ok {
					t.Errorf("[%s] registration must not issue a token", tt.name)
				}
			}
		})
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		loginFn        func(cqrs.LoginCommand) (string, error)
		expectedStatus int
	}{
		{
			name:           "success - valid credentials return JWT",
			body:           map[string]string{"username": "alice", "password": "s3cret"},
			loginFn:        func(cmd cqrs.LoginCommand) (string, error) { return "mock.jwt.token", nil },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unauthorised - invalid credentials",
			body:           map[string]string{"username": "alice", "password": "wrong"},
			loginFn:        func(cmd cqrs.LoginCommand) (string, error) { return "", apperr.ErrInvalidCredentials },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "internal error - store failure",
			body:           map[string]string{"username": "alice", "password": "s3cret"},
			loginFn:        func(cmd cqrs.LoginCommand) (string, error) { return "", fmt.Errorf("db down") },
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "bad request - missing username",
			body:           map[string]string{"password": "s3cret"},
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthTestRouter(&mockUserCommander{}, &mockAuthQuerier{loginFn: tt.loginFn})
			w := authDoRequest(router, http.MethodPost, "/api/users/login", tt.body, "")
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestRefreshToken(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		refreshFn      func(cqrs.RefreshTokenCommand) (string, error)
		expectedStatus int
	}{
		{
			name:           "success - valid token returns new JWT",
			body:           map[string]string{"token": "valid.jwt.token"},
			refreshFn:      func(cmd cqrs.RefreshTokenCommand) (string, error) { return "new.jwt.token", nil },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unauthorised - invalid token",
			body:           map[string]string{"token": "invalid.jwt.token"},
			refreshFn:      func(cmd cqrs.RefreshTokenCommand) (string, error) { return "", apperr.ErrInvalidCredentials },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "bad request - missing token field",
			body:           map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthTestRouter(&mockUserCommander{}, &mockAuthQuerier{refreshFn: tt.refreshFn})
			w := authDoRequest(router, http.MethodPost, "/api/users/refresh", tt.body, "")
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestMe(t *testing.T) {
	getUserFn := func(q cqrs.GetUserQuery) (*models.User, error) {
		if q.UserID == 1 {
			return &models.User{ID: 1, Username: "alice", PasswordHash: "$2a$10$hash"}, nil
		}
		return nil, apperr.ErrNotFound
	}

	tests := []struct {
		name           string
		token          string
		expectedStatus int
	}{
		{"success - valid token", signedToken(t, 1, time.Hour), http.StatusOK},
		{"unauthorised - no token", "", http.StatusUnauthorized},
		{"unauthorised - expired token", signedToken(t, 1, -time.Hour), http.StatusUnauthorized},
		{"unauthorised - user no longer exists", signedToken(t, 2, time.Hour), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthTestRouter(&mockUserCommander{}, &mockAuthQuerier{getUserFn: getUserFn})
			w := authDoRequest(router, http.MethodGet, "/api/users/me", nil, tt.token)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
			if w.Code == http.StatusOK && strings.Contains(w.Body.String(), "hash") {
				t.Errorf("[%s] password hash leaked: %s", tt.name, w.Body.String())
			}
		})
	}
}
