package database

import "errors"

// ErrCommitFailed đánh dấu lỗi xảy ra ở bước COMMIT: fn đã chạy xong
// (kể cả side effect ngoài DB) nhưng thay đổi không được lưu.
var ErrCommitFailed = errors.New("failed to commit transaction")
