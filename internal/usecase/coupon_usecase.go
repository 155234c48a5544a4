package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"storefront/internal/domain/coupon"
	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type CouponUsecase struct {
	coupons repo.CouponRepository
	now     func() time.Time
}

func NewCouponUsecase(coupons repo.CouponRepository) *CouponUsecase {
	return &CouponUsecase{coupons: coupons, now: time.Now}
}

// CouponSummary is the public view of a coupon.
type CouponSummary struct {
	Code           string             `json:"code"`
	DiscountType   model.DiscountType `json:"discountType"`
	DiscountValue  decimal.Decimal    `json:"discountValue"`
	MinOrderAmount decimal.Decimal    `json:"minOrderAmount"`
	MaxDiscount    *decimal.Decimal   `json:"maxDiscount"`
}

// ListActive returns coupons usable right now.
func (u *CouponUsecase) ListActive(ctx context.Context) ([]CouponSummary, error) {
	items, err := u.coupons.ListUsable(ctx, u.now())
	if err != nil {
		return nil, internalError(err)
	}
	out := make([]CouponSummary, 0, len(items))
	for _, c := range items {
		out = append(out, CouponSummary{
			Code:           c.Code,
			DiscountType:   c.DiscountType,
			DiscountValue:  c.DiscountValue,
			MinOrderAmount: c.MinOrderAmount,
			MaxDiscount:    c.MaxDiscount,
		})
	}
	return out, nil
}

// Apply evaluates a coupon against total and consumes one use of it.
func (u *CouponUsecase) Apply(ctx context.Context, code string, total decimal.Decimal) (coupon.Discount, error) {
	var fe fieldErrors
	code = model.NormalizeCouponCode(code)
	if code == "" {
		fe.add("code", "Code is required")
	}
	if !total.IsPositive() {
		fe.add("total", "Total must be a positive number")
	}
	if err := fe.err(); err != nil {
		return coupon.Discount{}, err
	}

	c, err := u.coupons.FindUsable(ctx, code, u.now())
	if errors.Is(err, repo.ErrNotFound) {
		return coupon.Discount{}, NewHTTPError(http.StatusNotFound, coupon.ErrInvalidOrExpired.Error())
	}
	if err != nil {
		return coupon.Discount{}, internalError(err)
	}

	d, err := coupon.Evaluate(c, total)
	if errors.Is(err, coupon.ErrMinimumNotMet) {
		return coupon.Discount{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return coupon.Discount{}, internalError(err)
	}

	// 上限チェックは更新条件の中でもう一度行う
	if err := u.coupons.IncrementUsage(ctx, c.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return coupon.Discount{}, NewHTTPError(http.StatusNotFound, coupon.ErrInvalidOrExpired.Error())
		}
		return coupon.Discount{}, internalError(err)
	}
	return d, nil
}

// CouponInput is the admin payload. Nil fields are left unchanged on update.
// A zero MaxDiscount or UsageLimit removes the cap.
type CouponInput struct {
	Code           *string
	DiscountType   *string
	DiscountValue  *decimal.Decimal
	MinOrderAmount *decimal.Decimal
	MaxDiscount    *decimal.Decimal
	UsageLimit     *int
	IsActive       *bool
	ValidFrom      *time.Time
	ValidUntil     *time.Time
}

func (in CouponInput) validate(create bool) error {
	var fe fieldErrors
	if (create || in.Code != nil) && (in.Code == nil || model.NormalizeCouponCode(*in.Code) == "") {
		fe.add("code", "Code is required")
	}
	if (create || in.DiscountType != nil) && (in.DiscountType == nil || !model.DiscountType(*in.DiscountType).IsValid()) {
		fe.add("discountType", "Invalid discount type")
	}
	if (create || in.DiscountValue != nil) && (in.DiscountValue == nil || !in.DiscountValue.IsPositive()) {
		fe.add("discountValue", "Discount value must be a positive number")
	}
	if create && in.ValidUntil == nil {
		fe.add("validUntil", "Valid until date is required")
	}
	if in.MinOrderAmount != nil && in.MinOrderAmount.IsNegative() {
		fe.add("minOrderAmount", "Min order amount must be a number")
	}
	if in.MaxDiscount != nil && in.MaxDiscount.IsNegative() {
		fe.add("maxDiscount", "Max discount must be a number")
	}
	if in.UsageLimit != nil && *in.UsageLimit < 0 {
		fe.add("usageLimit", "Usage limit must be an integer")
	}
	return fe.err()
}

func (in CouponInput) applyTo(c *model.Coupon) {
	if in.Code != nil {
		c.Code = model.NormalizeCouponCode(*in.Code)
	}
	if in.DiscountType != nil {
		c.DiscountType = model.DiscountType(*in.DiscountType)
	}
	if in.DiscountValue != nil {
		c.DiscountValue = *in.DiscountValue
	}
	if in.MinOrderAmount != nil {
		c.MinOrderAmount = *in.MinOrderAmount
	}
	if in.MaxDiscount != nil {
		c.MaxDiscount = in.MaxDiscount
		if in.MaxDiscount.IsZero() {
			c.MaxDiscount = nil
		}
	}
	if in.UsageLimit != nil {
		c.UsageLimit = in.UsageLimit
		if *in.UsageLimit == 0 {
			c.UsageLimit = nil
		}
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if in.ValidFrom != nil {
		c.ValidFrom = *in.ValidFrom
	}
	if in.ValidUntil != nil {
		c.ValidUntil = *in.ValidUntil
	}
}

func (u *CouponUsecase) Create(ctx context.Context, in CouponInput) (*model.Coupon, error) {
	if err := in.validate(true); err != nil {
		return nil, err
	}

	code := model.NormalizeCouponCode(*in.Code)
	_, err := u.coupons.FindByCode(ctx, code)
	if err == nil {
		return nil, NewHTTPError(http.StatusBadRequest, "Coupon code already exists")
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, internalError(err)
	}

	now := u.now()
	c := &model.Coupon{
		MinOrderAmount: decimal.Zero,
		IsActive:       true,
		ValidFrom:      now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	in.applyTo(c)
	if err := u.coupons.Create(ctx, c); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, NewHTTPError(http.StatusBadRequest, "Coupon code already exists")
		}
		return nil, internalError(err)
	}
	return c, nil
}

// ListAll は管理者向け、新しい順。
func (u *CouponUsecase) ListAll(ctx context.Context) ([]model.Coupon, error) {
	items, err := u.coupons.List(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	return items, nil
}

func (u *CouponUsecase) Update(ctx context.Context, id string, in CouponInput) (*model.Coupon, error) {
	if err := in.validate(false); err != nil {
		return nil, err
	}
	c, err := u.coupons.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "Coupon not found")
	}
	if err != nil {
		return nil, internalError(err)
	}
	// 使用済み回数より小さい上限は設定できない
	if in.UsageLimit != nil && *in.UsageLimit > 0 && *in.UsageLimit < c.UsedCount {
		var fe fieldErrors
		fe.add("usageLimit", "Usage limit cannot be lower than the number of times the coupon was used")
		return nil, fe.err()
	}

	in.applyTo(c)
	c.UpdatedAt = u.now()
	if err := u.coupons.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, NewHTTPError(http.StatusNotFound, "Coupon not found")
		case errors.Is(err, repo.ErrConflict):
			return nil, NewHTTPError(http.StatusBadRequest, "Coupon code already exists")
		}
		return nil, internalError(err)
	}
	return c, nil
}

func (u *CouponUsecase) Delete(ctx context.Context, id string) error {
	err := u.coupons.Delete(ctx, strings.TrimSpace(id))
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Coupon not found")
	}
	if err != nil {
		return internalError(err)
	}
	return nil
}
