package mongostore

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/domain/model"
)

// Amounts are stored as BSON doubles so documents stay readable by other
// tooling. They are converted back to decimals at the store boundary.

type productDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	ImageURL    string             `bson:"imageUrl,omitempty"`
	Category    string             `bson:"category,omitempty"`
	InStock     bool               `bson:"inStock"`
	Tags        []string           `bson:"tags"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func newProductDoc(p *model.Product) productDoc {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return productDoc{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		InStock:     p.InStock,
		Tags:        tags,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (d productDoc) toModel() model.Product {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return model.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       model.RoundMoney(decimal.NewFromFloat(d.Price)),
		ImageURL:    d.ImageURL,
		Category:    d.Category,
		InStock:     d.InStock,
		Tags:        tags,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type categoryDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Slug        string             `bson:"slug"`
	IsActive    bool               `bson:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func newCategoryDoc(c *model.Category) categoryDoc {
	return categoryDoc{
		Name:        c.Name,
		Description: c.Description,
		Slug:        c.Slug,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (d categoryDoc) toModel() model.Category {
	return model.Category{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Slug:        d.Slug,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type couponDoc struct {
	ID             primitive.ObjectID `bson:"_id"`
	Code           string             `bson:"code"`
	DiscountType   string             `bson:"discountType"`
	DiscountValue  float64            `bson:"discountValue"`
	MinOrderAmount float64            `bson:"minOrderAmount"`
	MaxDiscount    *float64           `bson:"maxDiscount"`
	UsageLimit     *int               `bson:"usageLimit"`
	UsedCount      int                `bson:"usedCount"`
	IsActive       bool               `bson:"isActive"`
	ValidFrom      time.Time          `bson:"validFrom"`
	ValidUntil     time.Time          `bson:"validUntil"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

func newCouponDoc(c *model.Coupon) couponDoc {
	d := couponDoc{
		Code:           model.NormalizeCouponCode(c.Code),
		DiscountType:   string(c.DiscountType),
		DiscountValue:  c.DiscountValue.InexactFloat64(),
		MinOrderAmount: c.MinOrderAmount.InexactFloat64(),
		UsageLimit:     c.UsageLimit,
		UsedCount:      c.UsedCount,
		IsActive:       c.IsActive,
		ValidFrom:      c.ValidFrom,
		ValidUntil:     c.ValidUntil,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	if c.MaxDiscount != nil {
		v := c.MaxDiscount.InexactFloat64()
		d.MaxDiscount = &v
	}
	return d
}

func (d couponDoc) toModel() model.Coupon {
	c := model.Coupon{
		ID:             d.ID.Hex(),
		Code:           d.Code,
		DiscountType:   model.DiscountType(d.DiscountType),
		DiscountValue:  decimal.NewFromFloat(d.DiscountValue),
		MinOrderAmount: decimal.NewFromFloat(d.MinOrderAmount),
		UsageLimit:     d.UsageLimit,
		UsedCount:      d.UsedCount,
		IsActive:       d.IsActive,
		ValidFrom:      d.ValidFrom,
		ValidUntil:     d.ValidUntil,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	if d.MaxDiscount != nil {
		v := decimal.NewFromFloat(*d.MaxDiscount)
		c.MaxDiscount = &v
	}
	return c
}
