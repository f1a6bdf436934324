package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/infrastructure/storage"
	"bookcatalog-backend/internal/shared"
)

// BookLookup - phần repository mà các job cần
type BookLookup interface {
	FindByID(ctx context.Context, id int64) (*model.Book, error)
	CoveredIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
}

// DeleteCoverHandler xóa artifact ảnh bìa sau khi book bị xóa hoặc transaction rollback
type DeleteCoverHandler struct {
	store storage.CoverStore
	books BookLookup
}

func NewDeleteCoverHandler(store storage.CoverStore, books BookLookup) *DeleteCoverHandler {
	return &DeleteCoverHandler{store: store, books: books}
}

func (h *DeleteCoverHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.DeleteCoverPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal DeleteCover payload")
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.Key == "" {
		payload.Key = model.CoverKey(payload.BookID)
	}

	// book vẫn còn và đang trỏ tới cover (vd: update sau đó đã thành công): giữ artifact
	book, err := h.books.FindByID(ctx, payload.BookID)
	switch {
	case err == nil && book.HasCover():
		log.Info().
			Int64("book_id", payload.BookID).
			Str("reason", payload.Reason).
			Msg("Book still references its cover, skipping cleanup")
		return nil
	case err != nil && !errors.Is(err, model.ErrBookNotFound):
		return fmt.Errorf("lookup book %d: %w", payload.BookID, err)
	}

	if err := h.store.Delete(ctx, payload.Key); err != nil {
		log.Error().
			Err(err).
			Int64("book_id", payload.BookID).
			Msg("Failed to delete cover")
		return fmt.Errorf("delete cover: %w", err)
	}

	log.Info().
		Int64("book_id", payload.BookID).
		Str("key", payload.Key).
		Str("reason", payload.Reason).
		Msg("Cover deleted")
	return nil
}
