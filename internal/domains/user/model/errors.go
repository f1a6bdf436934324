package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/pkg/logger"
)

var (
	ErrInvalidUserInput   = errors.New("invalid user input")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user id already exists")
	ErrInvalidCredentials = errors.New("invalid id or password")
)

// HandleUserError map domain error sang HTTP response, trả về false nếu err == nil
func HandleUserError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrInvalidUserInput):
		response.ErrorWithDetails(c, http.StatusBadRequest, "USER_INVALID_INPUT", "id, pw and name are required", err.Error())
	case errors.Is(err, ErrUserAlreadyExists):
		response.Conflict(c, "User id already exists")
	case errors.Is(err, ErrInvalidCredentials):
		// không phân biệt sai id hay sai pw
		response.Unauthorized(c, "Invalid id or password")
	case errors.Is(err, ErrUserNotFound):
		response.NotFound(c, "User not found")
	default:
		logger.Error("[Handler] Unhandled user error", err)
		response.InternalServerError(c, "Internal server error")
	}
	return true
}
