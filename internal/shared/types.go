package shared

// Asynq task types
const (
	TypeDeleteBookCover   = "book:delete_cover"
	TypeSweepOrphanCovers = "book:sweep_orphan_covers"
)

// Asynq queues
const (
	QueueDefault = "default"
	QueueLow     = "low"
)

// DeleteCoverPayload - xóa artifact ảnh bìa của một book
type DeleteCoverPayload struct {
	BookID int64  `json:"book_id"`
	Key    string `json:"key"`
	Reason string `json:"reason"` // deleted | rollback
}
