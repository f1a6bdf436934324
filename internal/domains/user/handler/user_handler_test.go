package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bookcatalog-backend/internal/domains/user/model"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Signup(ctx context.Context, req model.SignupRequest) (*model.UserDTO, error) {
	args := m.Called(ctx, req)
	dto, _ := args.Get(0).(*model.UserDTO)
	return dto, args.Error(1)
}

func (m *mockService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*model.LoginResponse)
	return resp, args.Error(1)
}

func setupRouter(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewUserHandler(svc)
	r := gin.New()
	r.POST("/api/auth/signup", h.Signup)
	r.POST("/api/auth/login", h.Login)
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignup(t *testing.T) {
	svc := &mockService{}
	svc.On("Signup", mock.Anything, model.SignupRequest{ID: "alice", Password: "pw", Name: "Alice"}).
		Return(&model.UserDTO{UserID: "alice", Name: "Alice"}, nil)
	svc.On("Signup", mock.Anything, model.SignupRequest{ID: "bob", Password: "pw", Name: "Bob"}).
		Return(nil, model.ErrUserAlreadyExists)
	r := setupRouter(svc)

	w := post(r, "/api/auth/signup", `{"id":"alice","pw":"pw","name":"Alice"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":"alice"`)

	w = post(r, "/api/auth/signup", `{"id":"bob","pw":"pw","name":"Bob"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = post(r, "/api/auth/signup", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	svc := &mockService{}
	svc.On("Login", mock.Anything, model.LoginRequest{ID: "alice", Password: "pw"}).
		Return(&model.LoginResponse{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}, nil)
	svc.On("Login", mock.Anything, model.LoginRequest{ID: "alice", Password: "bad"}).
		Return(nil, model.ErrInvalidCredentials)
	r := setupRouter(svc)

	w := post(r, "/api/auth/login", `{"id":"alice","pw":"pw"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bearer tok", w.Header().Get("Authorization"))
	assert.Contains(t, w.Body.String(), `"accessToken":"tok"`)

	w = post(r, "/api/auth/login", `{"id":"alice","pw":"bad"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Header().Get("Authorization"))
}
