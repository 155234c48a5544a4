package mongostore

import (
	"context"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type CategoryStore struct {
	coll *mongo.Collection
}

func NewCategoryStore(db *mongo.Database) *CategoryStore {
	return &CategoryStore{coll: db.Collection(categoriesCollection)}
}

func (s *CategoryStore) ListActive(ctx context.Context) ([]model.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find categories")
	}
	var docs []categoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode categories")
	}
	out := make([]model.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (s *CategoryStore) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return s.findOne(ctx, bson.M{"slug": slug})
}

func (s *CategoryStore) FindByID(ctx context.Context, id string) (*model.Category, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *CategoryStore) findOne(ctx context.Context, filter bson.M) (*model.Category, error) {
	var d categoryDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, mapReadErr(err, "find category")
	}
	c := d.toModel()
	return &c, nil
}

func (s *CategoryStore) Create(ctx context.Context, c *model.Category) error {
	d := newCategoryDoc(c)
	d.ID = primitive.NewObjectID()
	if _, err := s.coll.InsertOne(ctx, d); err != nil {
		return mapWriteErr(err, "insert category")
	}
	c.ID = d.ID.Hex()
	return nil
}

func (s *CategoryStore) Update(ctx context.Context, c *model.Category) error {
	oid, err := objectID(c.ID)
	if err != nil {
		return err
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":        c.Name,
		"description": c.Description,
		"slug":        c.Slug,
		"isActive":    c.IsActive,
		"updatedAt":   c.UpdatedAt,
	}})
	if err != nil {
		return mapWriteErr(err, "update category")
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// Deactivate hides a category without removing it; products keep their
// reference.
func (s *CategoryStore) Deactivate(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"isActive": false}})
	if err != nil {
		return errors.Wrap(err, "deactivate category")
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}
