package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/domains/category/service"
	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/pkg/logger"
)

type CategoryHandler struct {
	service service.Service
}

func NewCategoryHandler(svc service.Service) *CategoryHandler {
	return &CategoryHandler{service: svc}
}

// ListCategories - GET /api/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		logger.Error("[Handler] list categories", err)
		response.InternalServerError(c, "Internal server error")
		return
	}
	response.Success(c, http.StatusOK, categories)
}
