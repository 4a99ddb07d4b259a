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

const coursesCollection = "courses"

type CourseRepository struct {
	coll *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{coll: db.Collection(coursesCollection)}
}

type mongoMaterial struct {
	Filename    string `bson:"filename"`
	ContentType string `bson:"content_type"`
	SizeBytes   int64  `bson:"size_bytes"`
}

type mongoCourse struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	Price        float64            `bson:"price"`
	Currency     string             `bson:"currency"`
	Status       string             `bson:"status"`
	InstructorID string             `bson:"instructor_id"`
	Material     *mongoMaterial     `bson:"material,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (mc mongoCourse) toDomain() *domain.Course {
	c := &domain.Course{
		ID:           mc.ID.Hex(),
		Title:        mc.Title,
		Description:  mc.Description,
		Price:        mc.Price,
		Currency:     mc.Currency,
		Status:       domain.CourseStatus(mc.Status),
		InstructorID: mc.InstructorID,
		CreatedAt:    mc.CreatedAt,
		UpdatedAt:    mc.UpdatedAt,
	}
	if mc.Material != nil {
		c.Material = &domain.Material{
			Filename:    mc.Material.Filename,
			ContentType: mc.Material.ContentType,
			SizeBytes:   mc.Material.SizeBytes,
		}
	}
	return c
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCourse{
		Title:        c.Title,
		Description:  c.Description,
		Price:        c.Price,
		Currency:     c.Currency,
		Status:       string(c.Status),
		InstructorID: c.InstructorID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert course: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCourse
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CourseRepository) SetMaterial(ctx context.Context, courseID string, m *domain.Material) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"material": mongoMaterial{
			Filename:    m.Filename,
			ContentType: m.ContentType,
			SizeBytes:   m.SizeBytes,
		},
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mc mongoCourse
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("set course material: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CourseRepository) ListPublished(ctx context.Context) ([]*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"status": string(domain.CoursePublished)})
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Course
	for cur.Next(ctx) {
		var mc mongoCourse
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode course: %w", err)
		}
		out = append(out, mc.toDomain())
	}
	return out, cur.Err()
}
