package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/pkg/logger"
)

var (
	ErrInvalidBookInput = errors.New("invalid book input")
	ErrBlankSearchQuery = errors.New("search title must not be blank")
	ErrInvalidPageLimit = errors.New("page must be >= 0 and size must be 1-100")
	ErrInvalidCoverURL  = errors.New("invalid image URL")
	ErrBookNotFound     = errors.New("book not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrForbidden        = errors.New("only the owner can modify this book")
	ErrCoverNotFound    = errors.New("cover not found")
)

type errorSpec struct {
	Status  int
	Code    string
	Message string
}

// thứ tự quan trọng: lỗi được wrap nhiều lớp sẽ match entry đầu tiên
var bookErrorTable = []struct {
	err  error
	spec errorSpec
}{
	{ErrInvalidCoverURL, errorSpec{http.StatusBadRequest, "BOOK_INVALID_IMAGE_URL", "The image URL could not be downloaded"}},
	{ErrInvalidBookInput, errorSpec{http.StatusBadRequest, "BOOK_INVALID_INPUT", "Title, description, content and category are required"}},
	{ErrBlankSearchQuery, errorSpec{http.StatusBadRequest, "BOOK_INVALID_SEARCH", "Search title must not be blank"}},
	{ErrInvalidPageLimit, errorSpec{http.StatusBadRequest, "BOOK_INVALID_PAGE", "Page must be >= 0 and size between 1 and 100"}},
	{ErrBookNotFound, errorSpec{http.StatusNotFound, "BOOK_NOT_FOUND", "The specified book does not exist"}},
	{ErrUserNotFound, errorSpec{http.StatusNotFound, "USER_NOT_FOUND", "The calling user does not exist"}},
	{ErrCategoryNotFound, errorSpec{http.StatusNotFound, "CATEGORY_NOT_FOUND", "The specified category does not exist"}},
	{ErrCoverNotFound, errorSpec{http.StatusNotFound, "COVER_NOT_FOUND", "The book has no stored cover"}},
	{ErrForbidden, errorSpec{http.StatusForbidden, "BOOK_FORBIDDEN", "Only the owner can modify this book"}},
}

// HTTPStatus trả về status tương ứng với lỗi domain, 500 nếu không xác định
func HTTPStatus(err error) int {
	if spec, ok := lookup(err); ok {
		return spec.Status
	}
	return http.StatusInternalServerError
}

func lookup(err error) (errorSpec, bool) {
	for _, entry := range bookErrorTable {
		if errors.Is(err, entry.err) {
			return entry.spec, true
		}
	}
	return errorSpec{}, false
}

// HandleBookError ghi response lỗi, trả về false nếu err == nil
func HandleBookError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	if spec, ok := lookup(err); ok {
		// message chi tiết (vd: lỗi validation từng field) chỉ trả cho lỗi input
		if spec.Status == http.StatusBadRequest && errors.Is(err, ErrInvalidBookInput) {
			response.ErrorWithDetails(c, spec.Status, spec.Code, spec.Message, err.Error())
			return true
		}
		response.ErrorResponse(c, spec.Status, spec.Code, spec.Message)
		return true
	}

	logger.Error("[Handler] Unhandled book error", err)
	response.InternalServerError(c, "Internal server error")
	return true
}
