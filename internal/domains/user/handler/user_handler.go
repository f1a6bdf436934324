package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/domains/user/model"
	"bookcatalog-backend/internal/domains/user/service"
	"bookcatalog-backend/internal/shared/response"
)

// UserHandler xử lý /api/auth/*
type UserHandler struct {
	service service.Service
}

func NewUserHandler(svc service.Service) *UserHandler {
	return &UserHandler{service: svc}
}

// Signup - POST /api/auth/signup {id, pw, name}
func (h *UserHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	dto, err := h.service.Signup(c.Request.Context(), req)
	if model.HandleUserError(c, err) {
		return
	}
	response.Success(c, http.StatusCreated, dto)
}

// Login - POST /api/auth/login {id, pw}
// Token trả về ở cả Authorization header và body
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if model.HandleUserError(c, err) {
		return
	}

	c.Header("Authorization", "Bearer "+resp.AccessToken)
	response.Success(c, http.StatusOK, resp)
}
