package services

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"webstore/internal/domain"
	"webstore/internal/repos"
	"webstore/internal/validate"
)

type CheckoutService struct {
	Products  *repos.ProductRepo
	Inv       *repos.InventoryRepo
	Discounts *DiscountService
	Orders    *repos.OrderRepo
}

func NewCheckoutService(prods *repos.ProductRepo, inv *repos.InventoryRepo, disc *DiscountService, orders *repos.OrderRepo) *CheckoutService {
	return &CheckoutService{Products: prods, Inv: inv, Discounts: disc, Orders: orders}
}

type CheckoutInput struct {
	CustomerID     string
	Lines          []domain.CartLine
	PaymentMethod  string
	Card           domain.CardDetails
	Shipping       domain.ShippingAddress
	DiscountCode   string
	IdempotencyKey string
}

// Place runs the full checkout: validate everything up front, resolve the
// coupon, compute totals server-side, then hand one atomic commit to the
// order repository. The cart is all-or-nothing; a single bad line rejects
// the whole request before any transaction opens.
func (s *CheckoutService) Place(in CheckoutInput) (string, error) {
	if in.CustomerID == "" {
		return "", fmt.Errorf("%w: missing customer", domain.ErrInvalidInput)
	}
	if len(in.Lines) == 0 {
		return "", fmt.Errorf("%w: empty cart", domain.ErrInvalidInput)
	}

	seen := map[string]bool{}
	for _, ln := range in.Lines {
		if _, ok := validate.ID(ln.ProductID); !ok {
			return "", fmt.Errorf("%w: bad product id", domain.ErrInvalidInput)
		}
		if !validate.Qty(ln.Quantity) {
			return "", fmt.Errorf("%w: bad quantity for %s", domain.ErrInvalidInput, ln.ProductID)
		}
		if !validate.Price(ln.UnitPrice) {
			return "", fmt.Errorf("%w: bad unit price for %s", domain.ErrInvalidInput, ln.ProductID)
		}
		key := ln.ProductID + "|" + ln.Size
		if seen[key] {
			return "", fmt.Errorf("%w: duplicate line for %s", domain.ErrInvalidInput, ln.ProductID)
		}
		seen[key] = true
		if _, err := s.Products.Get(ln.ProductID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return "", fmt.Errorf("%w: unknown product %s", domain.ErrInvalidInput, ln.ProductID)
			}
			return "", err
		}
	}

	method, ok := validate.PaymentMethod(in.PaymentMethod)
	if !ok {
		return "", fmt.Errorf("%w: bad payment method", domain.ErrInvalidInput)
	}
	cardMasked := ""
	cardExp := ""
	cardHolder := ""
	if method == "CARD" {
		num, ok := validate.CardNumber(in.Card.Number)
		if !ok {
			return "", fmt.Errorf("%w: bad card number", domain.ErrInvalidInput)
		}
		exp, ok := validate.ExpDate(in.Card.ExpDate)
		if !ok {
			return "", fmt.Errorf("%w: bad card expiry", domain.ErrInvalidInput)
		}
		if !validate.CVV(in.Card.CVV) {
			return "", fmt.Errorf("%w: bad cvv", domain.ErrInvalidInput)
		}
		holder, ok := validate.Name(in.Card.Holder)
		if !ok {
			return "", fmt.Errorf("%w: bad card holder", domain.ErrInvalidInput)
		}
		// CVV is checked and dropped; only the masked PAN is persisted.
		cardMasked = validate.MaskCard(num)
		cardExp = exp
		cardHolder = holder
	}

	if in.Shipping.Address == "" {
		return "", fmt.Errorf("%w: missing shipping address", domain.ErrInvalidInput)
	}
	if in.Shipping.PostalCode != "" {
		if _, ok := validate.ZIP(in.Shipping.PostalCode); !ok {
			return "", fmt.Errorf("%w: bad postal code", domain.ErrInvalidInput)
		}
	}

	// Fast-path stock check so an obviously short cart fails before any
	// writes. The conditional update inside Commit stays authoritative.
	for _, ln := range in.Lines {
		qty, err := s.Inv.Qty(ln.ProductID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return "", err
		}
		if qty < ln.Quantity {
			return "", fmt.Errorf("%w: product %s (need %d, have %d)", domain.ErrOutOfStock, ln.ProductID, ln.Quantity, qty)
		}
	}

	d, err := s.Discounts.Resolve(in.DiscountCode, time.Now().UTC())
	if err != nil {
		return "", err
	}

	total := 0.0
	for _, ln := range in.Lines {
		total += float64(ln.Quantity) * ln.UnitPrice
	}
	total = round2(total)
	discountAmount := round2(total * d.Percentage / 100)
	final := round2(total - discountAmount)

	return s.Orders.Commit(repos.CheckoutOrder{
		OrderID:        uuid.NewString(),
		CustomerID:     in.CustomerID,
		Lines:          in.Lines,
		TotalAmount:    total,
		DiscountID:     d.ID,
		DiscountAmount: discountAmount,
		FinalAmount:    final,
		PaymentMethod:  method,
		CardMasked:     cardMasked,
		CardExpDate:    cardExp,
		CardHolder:     cardHolder,
		Shipping:       in.Shipping,
		IdempotencyKey: in.IdempotencyKey,
	}, NewTrackingNumber)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
