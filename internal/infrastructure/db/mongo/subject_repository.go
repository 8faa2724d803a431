package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/studyshare/materials-api/internal/core/domain"
)

const subjectsCollection = "subjects"

type SubjectRepository struct {
	coll *mongo.Collection
}

func NewSubjectRepository(db *mongo.Database) *SubjectRepository {
	return &SubjectRepository{coll: db.Collection(subjectsCollection)}
}

type subjectDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Materials   []primitive.ObjectID `bson:"materials"`
	CreatedBy   string               `bson:"created_by,omitempty"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

func (d *subjectDoc) toDomain() *domain.Subject {
	ids := make([]string, 0, len(d.Materials))
	for _, oid := range d.Materials {
		ids = append(ids, oid.Hex())
	}
	return &domain.Subject{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		MaterialIDs: ids,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *SubjectRepository) Insert(ctx context.Context, s *domain.Subject) (*domain.Subject, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := subjectDoc{
		Name:        s.Name,
		Description: s.Description,
		Materials:   []primitive.ObjectID{},
		CreatedBy:   s.CreatedBy,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert subject: %w", err)
	}

	created := *s
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *SubjectRepository) FindByID(ctx context.Context, id string) (*domain.Subject, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSubjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc subjectDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("find subject: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *SubjectRepository) List(ctx context.Context) ([]*domain.Subject, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer cur.Close(ctx)

	subjects := make([]*domain.Subject, 0)
	for cur.Next(ctx) {
		var doc subjectDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode subject: %w", err)
		}
		subjects = append(subjects, doc.toDomain())
	}
	return subjects, cur.Err()
}

func (r *SubjectRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSubjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSubjectNotFound
	}
	return nil
}

// PushMaterial appends a material reference with a single atomic $push.
func (r *SubjectRepository) PushMaterial(ctx context.Context, subjectID, materialID string) error {
	return r.updateMaterials(ctx, subjectID, materialID, "$push")
}

// PullMaterial removes a material reference with a single atomic $pull.
func (r *SubjectRepository) PullMaterial(ctx context.Context, subjectID, materialID string) error {
	return r.updateMaterials(ctx, subjectID, materialID, "$pull")
}

func (r *SubjectRepository) updateMaterials(ctx context.Context, subjectID, materialID, op string) error {
	sid, err := primitive.ObjectIDFromHex(subjectID)
	if err != nil {
		return domain.ErrSubjectNotFound
	}
	mid, err := primitive.ObjectIDFromHex(materialID)
	if err != nil {
		return domain.ErrMaterialNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateByID(ctx, sid, bson.M{
		op:     bson.M{"materials": mid},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("update subject materials: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSubjectNotFound
	}
	return nil
}
