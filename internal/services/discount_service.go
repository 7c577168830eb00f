package services

import (
	"database/sql"
	"errors"
	"time"

	"webstore/internal/domain"
	"webstore/internal/repos"
	"webstore/internal/validate"
)

type DiscountService struct {
	Discounts *repos.DiscountRepo
}

func NewDiscountService(discounts *repos.DiscountRepo) *DiscountService {
	return &DiscountService{Discounts: discounts}
}

// ResolvedDiscount is what checkout needs: the row id for the in-transaction
// use decrement, and the percentage for the total computation. A zero value
// means "no discount".
type ResolvedDiscount struct {
	ID         string
	Code       string
	Percentage float64
}

// Resolve looks up a coupon code and checks validity at "now". No code is
// not an error; an unknown, expired, not-yet-started or exhausted code all
// collapse into ErrInvalidCoupon.
func (s *DiscountService) Resolve(code string, now time.Time) (ResolvedDiscount, error) {
	if code == "" {
		return ResolvedDiscount{}, nil
	}
	code, ok := validate.CouponCode(code)
	if !ok {
		return ResolvedDiscount{}, domain.ErrInvalidCoupon
	}

	d, err := s.Discounts.ByCode(code)
	if errors.Is(err, sql.ErrNoRows) {
		return ResolvedDiscount{}, domain.ErrInvalidCoupon
	}
	if err != nil {
		return ResolvedDiscount{}, err
	}

	from, err := time.Parse(time.RFC3339, d.ValidFrom)
	if err != nil {
		return ResolvedDiscount{}, domain.ErrInvalidCoupon
	}
	until, err := time.Parse(time.RFC3339, d.ValidUntil)
	if err != nil {
		return ResolvedDiscount{}, domain.ErrInvalidCoupon
	}
	if now.Before(from) || now.After(until) {
		return ResolvedDiscount{}, domain.ErrInvalidCoupon
	}
	if d.RemainingUses <= 0 {
		return ResolvedDiscount{}, domain.ErrInvalidCoupon
	}

	return ResolvedDiscount{ID: d.ID, Code: d.Code, Percentage: d.Percentage}, nil
}
