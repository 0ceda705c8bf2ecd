package worker

// dlq.go — dead letter queue for receipt jobs.
// A receipt job that exhausts maxAttempts is parked here instead of being
// retried forever against a dead SMTP relay. Entries live in a Redis list
// keyed dlq:{source queue} (dlq:jobs:receipt for the one queue this app
// runs) and are replayed manually with LPOP + LPUSH back onto the source.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

// DLQEntry wraps a failed job with enough context to diagnose and replay it.
type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      time.Time       `json:"failed_at"`
	Attempts      int             `json:"attempts"`
}

// SendToDLQ parks a job that exhausted its retries. Never returns an error:
// by the time a job reaches the DLQ there is nothing left to retry, so a
// failed park is only logged.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue string, jobType string, payload json.RawMessage, reason string, attempts int) {
	entry := DLQEntry{
		OriginalQueue: queue,
		JobType:       jobType,
		Payload:       payload,
		Reason:        reason,
		FailedAt:      time.Now().UTC(),
		Attempts:      attempts,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: failed to marshal entry")
		return
	}

	if err := rdb.LPush(ctx, DLQPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: failed to park job")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("job_type", jobType).
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("dlq: job parked after exhausting retries")
}

// ReceiptDLQLength reports how many receipt jobs are parked, for monitoring.
func ReceiptDLQLength(ctx context.Context, rdb *redis.Client) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+QueueReceipt).Result()
}
