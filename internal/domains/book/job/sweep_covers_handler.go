package job

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/infrastructure/storage"
)

// DefaultSweepMinAge artifact mới hơn ngưỡng này có thể thuộc một create chưa commit
const DefaultSweepMinAge = 15 * time.Minute

// SweepOrphanCoversHandler xóa artifact không còn book nào tham chiếu:
// book đã bị xóa, hoặc book chưa từng commit cover (update rollback)
type SweepOrphanCoversHandler struct {
	store  storage.CoverStore
	books  BookLookup
	minAge time.Duration
	now    func() time.Time
}

func NewSweepOrphanCoversHandler(store storage.CoverStore, books BookLookup, minAge time.Duration) *SweepOrphanCoversHandler {
	if minAge <= 0 {
		minAge = DefaultSweepMinAge
	}
	return &SweepOrphanCoversHandler{store: store, books: books, minAge: minAge, now: time.Now}
}

func (h *SweepOrphanCoversHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	removed, err := h.Sweep(ctx)
	if err != nil {
		return err
	}
	log.Info().Int("removed", removed).Msg("Orphan cover sweep finished")
	return nil
}

// Sweep trả về số artifact đã xóa
func (h *SweepOrphanCoversHandler) Sweep(ctx context.Context) (int, error) {
	objects, err := h.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list covers: %w", err)
	}

	cutoff := h.now().Add(-h.minAge)
	candidates := make(map[int64]string)
	ids := make([]int64, 0, len(objects))
	for _, o := range objects {
		id, ok := parseCoverKey(o.Key)
		if !ok || o.LastModified.After(cutoff) {
			continue
		}
		candidates[id] = o.Key
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	covered, err := h.books.CoveredIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("check covered books: %w", err)
	}

	removed := 0
	for id, key := range candidates {
		if covered[id] {
			continue
		}
		if err := h.store.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to delete orphan cover")
			continue
		}
		removed++
	}
	return removed, nil
}

// parseCoverKey "{id}.png" -> id
func parseCoverKey(key string) (int64, bool) {
	raw, ok := strings.CutSuffix(key, ".png")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
