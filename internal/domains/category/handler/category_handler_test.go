package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"bookcatalog-backend/internal/domains/category/model"
)

type stubService struct {
	categories []model.Category
	err        error
}

func (s stubService) ListCategories(context.Context) ([]model.Category, error) {
	return s.categories, s.err
}

func serve(svc stubService) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/categories", NewCategoryHandler(svc).ListCategories)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	return w
}

func TestListCategories(t *testing.T) {
	w := serve(stubService{categories: []model.Category{{CategoryID: 1, Name: "Novel"}}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[{"categoryId":1,"name":"Novel"}]}`, w.Body.String())

	w = serve(stubService{err: errors.New("db down")})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
