package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"bookcatalog-backend/internal/shared"
)

// Client enqueue background task lên asynq
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, password string, db int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr, Password: password, DB: db}),
	}
}

// EnqueueCoverCleanup xóa artifact ảnh bìa ở background, retry tối đa 5 lần
func (c *Client) EnqueueCoverCleanup(ctx context.Context, payload shared.DeleteCoverPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal cover cleanup payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeDeleteBookCover, data,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	)
	if _, err := c.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue %s: %w", shared.TypeDeleteBookCover, err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
