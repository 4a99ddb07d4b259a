package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/learnhub/course-platform/internal/core/domain"
)

const enrollmentsCollection = "enrollments"

// EnrollmentRepository persists enrollment rows. The unique compound index
// on (subject_id, course_id) makes the ledger's one-row-per-pair invariant
// atomic at the storage layer, and the payment mutators are expressed as
// conditional findAndModify operations so a completed payment can never be
// reverted by a concurrent or late-arriving failure.
type EnrollmentRepository struct {
	coll *mongo.Collection
}

func NewEnrollmentRepository(db *mongo.Database) *EnrollmentRepository {
	return &EnrollmentRepository{coll: db.Collection(enrollmentsCollection)}
}

type mongoEnrollment struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	SubjectID        string             `bson:"subject_id"`
	CourseID         string             `bson:"course_id"`
	Status           string             `bson:"status"`
	PaymentStatus    string             `bson:"payment_status"`
	PaymentReference string             `bson:"payment_reference,omitempty"`
	Progress         int                `bson:"progress"`
	EnrollmentDate   time.Time          `bson:"enrollment_date"`
	CompletionDate   *time.Time         `bson:"completion_date,omitempty"`
	UpdatedAt        time.Time          `bson:"updated_at"`
}

func (me mongoEnrollment) toDomain() *domain.Enrollment {
	return &domain.Enrollment{
		ID:               me.ID.Hex(),
		SubjectID:        me.SubjectID,
		CourseID:         me.CourseID,
		Status:           domain.EnrollmentStatus(me.Status),
		PaymentStatus:    domain.PaymentStatus(me.PaymentStatus),
		PaymentReference: me.PaymentReference,
		Progress:         me.Progress,
		EnrollmentDate:   me.EnrollmentDate,
		CompletionDate:   me.CompletionDate,
		UpdatedAt:        me.UpdatedAt,
	}
}

func pairFilter(subjectID, courseID string) bson.M {
	return bson.M{"subject_id": subjectID, "course_id": courseID}
}

func (r *EnrollmentRepository) Create(ctx context.Context, e *domain.Enrollment) (*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoEnrollment{
		SubjectID:      e.SubjectID,
		CourseID:       e.CourseID,
		Status:         string(e.Status),
		PaymentStatus:  string(e.PaymentStatus),
		Progress:       e.Progress,
		EnrollmentDate: e.EnrollmentDate,
		UpdatedAt:      e.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("insert enrollment: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *EnrollmentRepository) FindBySubjectAndCourse(ctx context.Context, subjectID, courseID string) (*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoEnrollment
	if err := r.coll.FindOne(ctx, pairFilter(subjectID, courseID)).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return me.toDomain(), nil
}

func (r *EnrollmentRepository) ListBySubject(ctx context.Context, subjectID string) ([]*domain.Enrollment, error) {
	return r.list(ctx, bson.M{"subject_id": subjectID})
}

func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID string) ([]*domain.Enrollment, error) {
	return r.list(ctx, bson.M{"course_id": courseID})
}

func (r *EnrollmentRepository) list(ctx context.Context, filter bson.M) ([]*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "enrollment_date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Enrollment
	for cur.Next(ctx) {
		var me mongoEnrollment
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode enrollment: %w", err)
		}
		out = append(out, me.toDomain())
	}
	return out, cur.Err()
}

func (r *EnrollmentRepository) Reactivate(ctx context.Context, subjectID, courseID string, at time.Time) (*domain.Enrollment, error) {
	return r.findAndUpdate(ctx, pairFilter(subjectID, courseID), bson.M{"$set": bson.M{
		"status":         string(domain.EnrollmentActive),
		"payment_status": string(domain.PaymentPending),
		"updated_at":     at,
	}})
}

func (r *EnrollmentRepository) CompletePayment(ctx context.Context, subjectID, courseID, reference string, at time.Time) (*domain.Enrollment, error) {
	filter := pairFilter(subjectID, courseID)
	filter["payment_status"] = bson.M{"$ne": string(domain.PaymentCompleted)}

	updated, err := r.findAndUpdate(ctx, filter, bson.M{"$set": bson.M{
		"status":            string(domain.EnrollmentActive),
		"payment_status":    string(domain.PaymentCompleted),
		"payment_reference": reference,
		"updated_at":        at,
	}})
	if errors.Is(err, domain.ErrEnrollmentNotFound) {
		// No match: either the row is gone or the payment already completed
		// under a concurrent confirm. Resolve against the current row.
		return r.FindBySubjectAndCourse(ctx, subjectID, courseID)
	}
	return updated, err
}

func (r *EnrollmentRepository) FailPayment(ctx context.Context, subjectID, courseID string, at time.Time) (*domain.Enrollment, error) {
	filter := pairFilter(subjectID, courseID)
	filter["payment_status"] = bson.M{"$ne": string(domain.PaymentCompleted)}

	updated, err := r.findAndUpdate(ctx, filter, bson.M{"$set": bson.M{
		"payment_status": string(domain.PaymentFailed),
		"updated_at":     at,
	}})
	if errors.Is(err, domain.ErrEnrollmentNotFound) {
		// Completed payments are monotonic: return the row unchanged.
		return r.FindBySubjectAndCourse(ctx, subjectID, courseID)
	}
	return updated, err
}

func (r *EnrollmentRepository) UpdateProgress(ctx context.Context, subjectID, courseID string, progress int, completedAt *time.Time, at time.Time) (*domain.Enrollment, error) {
	set := bson.M{
		"progress":   progress,
		"updated_at": at,
	}
	if completedAt != nil {
		set["status"] = string(domain.EnrollmentCompleted)
		set["completion_date"] = *completedAt
	}
	return r.findAndUpdate(ctx, pairFilter(subjectID, courseID), bson.M{"$set": set})
}

func (r *EnrollmentRepository) Cancel(ctx context.Context, subjectID, courseID string, at time.Time) (*domain.Enrollment, error) {
	return r.findAndUpdate(ctx, pairFilter(subjectID, courseID), bson.M{"$set": bson.M{
		"status":     string(domain.EnrollmentCancelled),
		"updated_at": at,
	}})
}

func (r *EnrollmentRepository) findAndUpdate(ctx context.Context, filter, update bson.M) (*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var me mongoEnrollment
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("update enrollment: %w", err)
	}
	return me.toDomain(), nil
}

// EnsureIndexes creates the unique (subject_id, course_id) index that backs
// the ledger's one-row-per-pair invariant.
func (r *EnrollmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "subject_id", Value: 1}, {Key: "course_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "course_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
