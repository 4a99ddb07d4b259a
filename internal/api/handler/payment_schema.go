package handler

import "time"

type paymentEventRequest struct {
	SubjectID string    `json:"subject_id" validate:"required"`
	CourseID  string    `json:"course_id"  validate:"required"`
	Status    string    `json:"status"     validate:"required,oneof=completed failed"`
	Reference string    `json:"reference"  validate:"required"`
	Provider  string    `json:"provider"   validate:"required"`
	Timestamp time.Time `json:"timestamp"  validate:"required"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}
