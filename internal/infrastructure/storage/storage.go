package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

var (
	ErrObjectNotFound = errors.New("stored object not found")
	ErrInvalidKey     = errors.New("invalid storage key")
)

// CoverStore là nơi lưu artifact ảnh bìa. Save ghi đè nếu key đã tồn tại.
type CoverStore interface {
	Save(ctx context.Context, key string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]ObjectInfo, error)
}

type ObjectInfo struct {
	Key          string
	LastModified time.Time
}

// cleanKey chỉ chấp nhận tên file phẳng, không chứa path separator hay ".."
func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", ErrInvalidKey
	}
	if path.Clean(key) != key || strings.HasPrefix(key, ".") {
		return "", ErrInvalidKey
	}
	return key, nil
}
