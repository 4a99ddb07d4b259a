package domain

import (
	"errors"
	"time"
)

// CourseStatus represents the publication state of a course.
type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
)

var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrMaterialNotFound = errors.New("course material not found")
)

// Material describes the protected asset attached to a course.
type Material struct {
	Filename    string `json:"filename" bson:"filename"`
	ContentType string `json:"content_type" bson:"content_type"`
	SizeBytes   int64  `json:"size_bytes" bson:"size_bytes"`
}

// Course is the catalog entry a subject enrolls in. Related records
// (enrollments, instructor) reference it by opaque ID only.
type Course struct {
	ID           string       `json:"id" bson:"_id,omitempty"`
	Title        string       `json:"title" bson:"title"`
	Description  string       `json:"description" bson:"description"`
	Price        float64      `json:"price" bson:"price"`
	Currency     string       `json:"currency" bson:"currency"`
	Status       CourseStatus `json:"status" bson:"status"`
	InstructorID string       `json:"instructor_id" bson:"instructor_id"`
	Material     *Material    `json:"material,omitempty" bson:"material,omitempty"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" bson:"updated_at"`
}
