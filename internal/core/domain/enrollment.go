package domain

import (
	"errors"
	"time"
)

// EnrollmentStatus represents the lifecycle state of an enrollment.
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)

// PaymentStatus represents the payment state of an enrollment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

var (
	ErrAlreadyEnrolled     = errors.New("already enrolled")
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrEnrollmentCancelled = errors.New("enrollment cancelled")
)

// Enrollment records one subject's relationship to one course. At most one
// row exists per (SubjectID, CourseID) pair, enforced with a unique index
// at the storage layer, not an application-level check-then-insert.
type Enrollment struct {
	ID               string           `json:"id" bson:"_id,omitempty"`
	SubjectID        string           `json:"subject_id" bson:"subject_id"`
	CourseID         string           `json:"course_id" bson:"course_id"`
	Status           EnrollmentStatus `json:"status" bson:"status"`
	PaymentStatus    PaymentStatus    `json:"payment_status" bson:"payment_status"`
	PaymentReference string           `json:"payment_reference,omitempty" bson:"payment_reference,omitempty"`
	Progress         int              `json:"progress" bson:"progress"`
	EnrollmentDate   time.Time        `json:"enrollment_date" bson:"enrollment_date"`
	CompletionDate   *time.Time       `json:"completion_date,omitempty" bson:"completion_date,omitempty"`
	UpdatedAt        time.Time        `json:"updated_at" bson:"updated_at"`
}

// GrantsAccess reports whether this row entitles the subject to the
// course's paid content: active and payment completed, nothing else.
func (e *Enrollment) GrantsAccess() bool {
	return e.Status == EnrollmentActive && e.PaymentStatus == PaymentCompleted
}

// PaymentSettled reports whether the payment reached a terminal successful
// state. A completed payment is monotonic and is never reverted here.
func (e *Enrollment) PaymentSettled() bool {
	return e.PaymentStatus == PaymentCompleted
}
