package ports

import (
	"context"
	"time"
)

// PaymentEventInput is the DTO for a payment-gateway notification. Delivery
// is at-least-once; the pipeline dedups and the ledger is idempotent.
type PaymentEventInput struct {
	SubjectID string
	CourseID  string
	Status    string // "completed" or "failed"
	Reference string
	Provider  string
	Timestamp time.Time
}

// PaymentService applies incoming payment events to the enrollment ledger.
type PaymentService interface {
	Process(ctx context.Context, event PaymentEventInput) error
}
