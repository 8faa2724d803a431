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

const materialsCollection = "materials"

type MaterialRepository struct {
	coll *mongo.Collection
}

func NewMaterialRepository(db *mongo.Database) *MaterialRepository {
	return &MaterialRepository{coll: db.Collection(materialsCollection)}
}

type fileDoc struct {
	Name       string `bson:"file_name"`
	StorageKey string `bson:"storage_key"`
	URL        string `bson:"file_url"`
	Extension  string `bson:"file_type"`
	SizeBytes  int64  `bson:"size_bytes"`
}

type materialDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Subject   primitive.ObjectID `bson:"subject"`
	Link      string             `bson:"link,omitempty"`
	File      *fileDoc           `bson:"file,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *materialDoc) toDomain() *domain.Material {
	m := &domain.Material{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		SubjectID: d.Subject.Hex(),
		Link:      d.Link,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.File != nil {
		m.File = &domain.FileInfo{
			Name:       d.File.Name,
			StorageKey: d.File.StorageKey,
			URL:        d.File.URL,
			Extension:  d.File.Extension,
			SizeBytes:  d.File.SizeBytes,
		}
	}
	return m
}

func (r *MaterialRepository) Insert(ctx context.Context, m *domain.Material) (*domain.Material, error) {
	sid, err := primitive.ObjectIDFromHex(m.SubjectID)
	if err != nil {
		return nil, domain.ErrSubjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := materialDoc{
		Title:     m.Title,
		Subject:   sid,
		Link:      m.Link,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.File != nil {
		doc.File = &fileDoc{
			Name:       m.File.Name,
			StorageKey: m.File.StorageKey,
			URL:        m.File.URL,
			Extension:  m.File.Extension,
			SizeBytes:  m.File.SizeBytes,
		}
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert material: %w", err)
	}

	created := *m
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MaterialRepository) FindByID(ctx context.Context, id string) (*domain.Material, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMaterialNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc materialDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMaterialNotFound
		}
		return nil, fmt.Errorf("find material: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MaterialRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Material, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []*domain.Material{}, nil
	}
	return r.findAll(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (r *MaterialRepository) FindBySubject(ctx context.Context, subjectID string) ([]*domain.Material, error) {
	sid, err := primitive.ObjectIDFromHex(subjectID)
	if err != nil {
		return nil, domain.ErrSubjectNotFound
	}
	return r.findAll(ctx, bson.M{"subject": sid})
}

func (r *MaterialRepository) findAll(ctx context.Context, filter bson.M) ([]*domain.Material, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find materials: %w", err)
	}
	defer cur.Close(ctx)

	materials := make([]*domain.Material, 0)
	for cur.Next(ctx) {
		var doc materialDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode material: %w", err)
		}
		materials = append(materials, doc.toDomain())
	}
	return materials, cur.Err()
}

func (r *MaterialRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrMaterialNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMaterialNotFound
	}
	return nil
}

// EnsureIndexes creates the subject lookup index.
func (r *MaterialRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "subject", Value: 1}},
	})
	return err
}
