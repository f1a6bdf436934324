package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/domains/book/service"
	"bookcatalog-backend/internal/shared/middleware"
	"bookcatalog-backend/internal/shared/response"
)

// CoverReader mở artifact ảnh bìa để stream ra client
type CoverReader interface {
	OpenCover(ctx context.Context, bookID int64) (io.ReadCloser, error)
}

// Handler - HTTP Handler
type Handler struct {
	service service.Service
	covers  CoverReader
}

// NewHandler - Constructor with DI
func NewHandler(svc service.Service, covers CoverReader) *Handler {
	return &Handler{service: svc, covers: covers}
}

// ListBooks - GET /api/books?page=0&size=10
func (h *Handler) ListBooks(c *gin.Context) {
	req, ok := bindPage(c)
	if !ok {
		return
	}

	data, err := h.service.ListBooks(c.Request.Context(), req)
	if model.HandleBookError(c, err) {
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, data, pageMeta(req, data))
}

// SearchBooks - GET /api/books/search?title=&page=&size=
func (h *Handler) SearchBooks(c *gin.Context) {
	req, ok := bindPage(c)
	if !ok {
		return
	}

	data, err := h.service.SearchBooks(c.Request.Context(), c.Query("title"), req)
	if model.HandleBookError(c, err) {
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, data, pageMeta(req, data))
}

// GetBookDetail - GET /api/books/:id
func (h *Handler) GetBookDetail(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	detail, err := h.service.GetBookDetail(c.Request.Context(), id)
	if model.HandleBookError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// CreateBook - POST /api/books/create (auth)
func (h *Handler) CreateBook(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.CreateBook(c.Request.Context(), userID, req)
	if model.HandleBookError(c, err) {
		return
	}
	response.Success(c, http.StatusCreated, resp)
}

// UpdateBook - PUT /api/books/:id (auth), replace toàn bộ field
func (h *Handler) UpdateBook(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}
	id, ok := bookID(c)
	if !ok {
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.UpdateBook(c.Request.Context(), userID, id, req)
	if model.HandleBookError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// DeleteBook - DELETE /api/books/:id (auth)
func (h *Handler) DeleteBook(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}
	id, ok := bookID(c)
	if !ok {
		return
	}

	resp, err := h.service.DeleteBook(c.Request.Context(), userID, id)
	if model.HandleBookError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// GetCover - GET /api/books/cover/:id, đích của cover reference
func (h *Handler) GetCover(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	rc, err := h.covers.OpenCover(c.Request.Context(), id)
	if model.HandleBookError(c, err) {
		return
	}
	defer rc.Close()

	c.Header("Cache-Control", "public, max-age=300")
	c.DataFromReader(http.StatusOK, -1, "image/png", rc, nil)
}

// ExportBooks - GET /api/books/export?page=&size=
func (h *Handler) ExportBooks(c *gin.Context) {
	req, ok := bindPage(c)
	if !ok {
		return
	}

	data, err := h.service.ExportBooks(c.Request.Context(), req)
	if model.HandleBookError(c, err) {
		return
	}

	filename := fmt.Sprintf("books_%s_p%d.xlsx", time.Now().Format("20060102_150405"), req.Page)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ========================= HELPERS =====================

func bookID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid book id")
		return 0, false
	}
	return id, true
}

func bindPage(c *gin.Context) (model.PageRequest, bool) {
	var req model.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		model.HandleBookError(c, model.ErrInvalidPageLimit)
		return req, false
	}
	req.ApplyDefaults()
	return req, true
}

func pageMeta(req model.PageRequest, data *model.BookListResponse) *response.Meta {
	return &response.Meta{
		Page:       req.Page,
		Size:       req.Size,
		TotalPages: data.TotalPages,
		Total:      data.Total,
	}
}
