package mongostore

import (
	"context"
	"regexp"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type ProductStore struct {
	coll *mongo.Collection
}

func NewProductStore(db *mongo.Database) *ProductStore {
	return &ProductStore{coll: db.Collection(productsCollection)}
}

// productFilter translates list query parameters into a Mongo filter.
// Search is a case-insensitive substring match on the name.
func productFilter(q repo.ProductListQuery) bson.M {
	filter := bson.M{}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.Search != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		price := bson.M{}
		if q.MinPrice != nil {
			price["$gte"] = q.MinPrice.InexactFloat64()
		}
		if q.MaxPrice != nil {
			price["$lte"] = q.MaxPrice.InexactFloat64()
		}
		filter["price"] = price
	}
	return filter
}

func (s *ProductStore) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.coll.Find(ctx, productFilter(q), opts)
	if err != nil {
		return nil, errors.Wrap(err, "find products")
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	out := make([]model.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (s *ProductStore) FindByID(ctx context.Context, id string) (*model.Product, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var d productDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return nil, mapReadErr(err, "find product")
	}
	p := d.toModel()
	return &p, nil
}

func (s *ProductStore) Create(ctx context.Context, p *model.Product) error {
	d := newProductDoc(p)
	d.ID = primitive.NewObjectID()
	if _, err := s.coll.InsertOne(ctx, d); err != nil {
		return mapWriteErr(err, "insert product")
	}
	p.ID = d.ID.Hex()
	return nil
}

func (s *ProductStore) Update(ctx context.Context, p *model.Product) error {
	oid, err := objectID(p.ID)
	if err != nil {
		return err
	}
	d := newProductDoc(p)
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":        d.Name,
		"description": d.Description,
		"price":       d.Price,
		"imageUrl":    d.ImageURL,
		"category":    d.Category,
		"inStock":     d.InStock,
		"tags":        d.Tags,
		"updatedAt":   d.UpdatedAt,
	}})
	if err != nil {
		return mapWriteErr(err, "update product")
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}
