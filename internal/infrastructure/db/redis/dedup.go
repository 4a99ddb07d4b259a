package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// PaymentDedup provides idempotency checks for payment-gateway events.
// Key format: payment:<subject_id>:<course_id>:<reference>:<status>
type PaymentDedup struct {
	client *redis.Client
}

// NewPaymentDedup creates a PaymentDedup wrapping the given Redis client.
func NewPaymentDedup(client *redis.Client) *PaymentDedup {
	return &PaymentDedup{client: client}
}

// IsDuplicate reports whether this exact event has already been applied.
func (d *PaymentDedup) IsDuplicate(ctx context.Context, subjectID, courseID, reference, status string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(subjectID, courseID, reference, status)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this event has been applied (expires after dedupTTL).
func (d *PaymentDedup) Mark(ctx context.Context, subjectID, courseID, reference, status string) error {
	return d.client.Set(ctx, d.key(subjectID, courseID, reference, status), "1", dedupTTL).Err()
}

func (d *PaymentDedup) key(subjectID, courseID, reference, status string) string {
	return fmt.Sprintf("payment:%s:%s:%s:%s", subjectID, courseID, reference, status)
}
