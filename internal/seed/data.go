package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
)

type userSeed struct {
	Email string
	UID   string
	Role  model.Role
}

// テスト用アカウント（認証エミュレータのUIDと合わせる）
var users = []userSeed{
	{Email: "test@test.com", UID: "test-admin-uid-123", Role: model.RoleAdmin},
	{Email: "client@test.com", UID: "test-client-uid-456", Role: model.RoleClient},
}

type categorySeed struct {
	Name        string
	Description string
}

var categories = []categorySeed{
	{"Electronics", "Electronic devices and gadgets"},
	{"Clothing", "Fashion and apparel"},
	{"Books", "Books and literature"},
	{"Home & Garden", "Home improvement and gardening"},
	{"Sports", "Sports equipment and accessories"},
}

type productSeed struct {
	Name         string
	Description  string
	Price        string
	CategoryName string
	Tags         []string
}

var products = []productSeed{
	{"Smartphone Pro", "Latest flagship smartphone with advanced features", "999.99", "Electronics", []string{"mobile", "tech", "premium"}},
	{"Laptop Gaming", "High-performance gaming laptop", "1599.99", "Electronics", []string{"laptop", "gaming", "computer"}},
	{"Wireless Earbuds", "Premium wireless earbuds with noise cancellation", "299.99", "Electronics", []string{"audio", "wireless", "premium"}},
	{"Smart Watch", "Fitness tracking smartwatch", "399.99", "Electronics", []string{"wearable", "fitness", "smart"}},
	{"Denim Jacket", "Classic blue denim jacket", "89.99", "Clothing", []string{"fashion", "jacket", "denim"}},
	{"Running Shoes", "Professional running shoes for athletes", "159.99", "Sports", []string{"shoes", "running", "athletics"}},
	{"Programming Guide", "Complete guide to modern programming", "49.99", "Books", []string{"programming", "education", "tech"}},
	{"Coffee Maker", "Automatic espresso coffee maker", "299.99", "Home & Garden", []string{"kitchen", "coffee", "appliance"}},
	{"Yoga Mat", "Premium non-slip yoga mat", "39.99", "Sports", []string{"yoga", "fitness", "exercise"}},
	{"Cooking Set", "Professional cooking utensils set", "129.99", "Home & Garden", []string{"kitchen", "cooking", "utensils"}},
}

// coupons are valid until the end of next year relative to now.
func coupons(now time.Time) []model.Coupon {
	until := time.Date(now.Year()+1, time.December, 31, 23, 59, 59, 0, time.UTC)
	maxBig := decimal.NewFromInt(100)

	mk := func(code string, typ model.DiscountType, value, minOrder int64) model.Coupon {
		return model.Coupon{
			Code:           code,
			DiscountType:   typ,
			DiscountValue:  decimal.NewFromInt(value),
			MinOrderAmount: decimal.NewFromInt(minOrder),
			IsActive:       true,
			ValidFrom:      now,
			ValidUntil:     until,
		}
	}

	big := mk("BIGDEAL", model.DiscountPercentage, 25, 300)
	big.MaxDiscount = &maxBig

	return []model.Coupon{
		mk("WELCOME10", model.DiscountPercentage, 10, 50),
		mk("SAVE20", model.DiscountFixed, 20, 100),
		mk("ELECTRONICS15", model.DiscountPercentage, 15, 200),
		mk("FREESHIP", model.DiscountFixed, 25, 75),
		big,
	}
}
