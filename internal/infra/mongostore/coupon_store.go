package mongostore

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type CouponStore struct {
	coll *mongo.Collection
}

func NewCouponStore(db *mongo.Database) *CouponStore {
	return &CouponStore{coll: db.Collection(couponsCollection)}
}

// underLimit matches coupons without a usage limit (null or missing) and
// coupons whose usedCount is still below it.
func underLimit() bson.M {
	return bson.M{"$expr": bson.M{"$or": bson.A{
		bson.M{"$eq": bson.A{bson.M{"$ifNull": bson.A{"$usageLimit", nil}}, nil}},
		bson.M{"$lt": bson.A{"$usedCount", "$usageLimit"}},
	}}}
}

func usableFilter(now time.Time) bson.M {
	f := underLimit()
	f["isActive"] = true
	f["validFrom"] = bson.M{"$lte": now}
	f["validUntil"] = bson.M{"$gte": now}
	return f
}

func (s *CouponStore) FindUsable(ctx context.Context, code string, now time.Time) (*model.Coupon, error) {
	f := usableFilter(now)
	f["code"] = model.NormalizeCouponCode(code)
	return s.findOne(ctx, f)
}

// IncrementUsage re-checks the limit inside the update so concurrent
// applications cannot push usedCount past usageLimit.
func (s *CouponStore) IncrementUsage(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	f := underLimit()
	f["_id"] = oid
	res, err := s.coll.UpdateOne(ctx, f, bson.M{
		"$inc": bson.M{"usedCount": 1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return errors.Wrap(err, "increment coupon usage")
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *CouponStore) ListUsable(ctx context.Context, now time.Time) ([]model.Coupon, error) {
	return s.find(ctx, usableFilter(now), bson.D{{Key: "code", Value: 1}})
}

// List returns every coupon, newest first.
func (s *CouponStore) List(ctx context.Context) ([]model.Coupon, error) {
	return s.find(ctx, bson.M{}, bson.D{{Key: "createdAt", Value: -1}})
}

func (s *CouponStore) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	return s.findOne(ctx, bson.M{"code": model.NormalizeCouponCode(code)})
}

func (s *CouponStore) FindByID(ctx context.Context, id string) (*model.Coupon, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *CouponStore) Create(ctx context.Context, c *model.Coupon) error {
	d := newCouponDoc(c)
	d.ID = primitive.NewObjectID()
	if _, err := s.coll.InsertOne(ctx, d); err != nil {
		return mapWriteErr(err, "insert coupon")
	}
	c.ID = d.ID.Hex()
	c.Code = d.Code
	return nil
}

func (s *CouponStore) Update(ctx context.Context, c *model.Coupon) error {
	oid, err := objectID(c.ID)
	if err != nil {
		return err
	}
	d := newCouponDoc(c)
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"code":           d.Code,
		"discountType":   d.DiscountType,
		"discountValue":  d.DiscountValue,
		"minOrderAmount": d.MinOrderAmount,
		"maxDiscount":    d.MaxDiscount,
		"usageLimit":     d.UsageLimit,
		"isActive":       d.IsActive,
		"validFrom":      d.ValidFrom,
		"validUntil":     d.ValidUntil,
		"updatedAt":      d.UpdatedAt,
	}})
	if err != nil {
		return mapWriteErr(err, "update coupon")
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *CouponStore) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "delete coupon")
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *CouponStore) findOne(ctx context.Context, filter bson.M) (*model.Coupon, error) {
	var d couponDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, mapReadErr(err, "find coupon")
	}
	c := d.toModel()
	return &c, nil
}

func (s *CouponStore) find(ctx context.Context, filter bson.M, sort bson.D) ([]model.Coupon, error) {
	cur, err := s.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, errors.Wrap(err, "find coupons")
	}
	var docs []couponDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode coupons")
	}
	out := make([]model.Coupon, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}
