package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"webstore/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// CheckoutOrder carries everything the atomic commit persists. Amounts are
// resolved by the service layer before the transaction opens.
type CheckoutOrder struct {
	OrderID        string
	CustomerID     string
	Lines          []domain.CartLine
	TotalAmount    float64
	DiscountID     string
	DiscountAmount float64
	FinalAmount    float64
	PaymentMethod  string
	CardMasked     string
	CardExpDate    string
	CardHolder     string
	Shipping       domain.ShippingAddress
	IdempotencyKey string
}

const trackingAttempts = 5

// Commit persists {order, items, payment, bill, shipment} and decrements
// inventory and discount uses as one transaction. Either every row lands or
// none do. Returns the shipment tracking number.
//
// A resubmission carrying an idempotency key already on file returns the
// original order's tracking number and writes nothing.
func (r *OrderRepo) Commit(o CheckoutOrder, nextTracking func() string) (string, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	if o.IdempotencyKey != "" {
		var prior string
		err := tx.Get(&prior, `
			SELECT s.tracking_number
			FROM orders o JOIN shipments s ON s.order_id = o.id
			WHERE o.idempotency_key = ?
		`, o.IdempotencyKey)
		if err == nil {
			return prior, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return "", err
		}
	}

	var idem any
	if o.IdempotencyKey != "" {
		idem = o.IdempotencyKey
	}
	var discountID any
	if o.DiscountID != "" {
		discountID = o.DiscountID
	}

	if _, err := tx.Exec(`
		INSERT INTO orders(id, customer_id, order_date, total_amount, discount_id, discount_amount, final_amount, status, idempotency_key)
		VALUES (?, ?, CURRENT_TIMESTAMP, ?, ?, ?, ?, 'PLACED', ?)
	`, o.OrderID, o.CustomerID, o.TotalAmount, discountID, o.DiscountAmount, o.FinalAmount, idem); err != nil {
		return "", err
	}

	// Reserve stock line by line; the conditional update is the only
	// serialization point, so a failed guard aborts the whole order.
	for _, ln := range o.Lines {
		if err := decrementTx(tx, ln.ProductID, ln.Quantity); err != nil {
			return "", err
		}
		if _, err := tx.Exec(`
			INSERT INTO order_items(order_id, product_id, quantity, unit_price, total_price, size)
			VALUES (?, ?, ?, ?, ?, ?)
		`, o.OrderID, ln.ProductID, ln.Quantity, ln.UnitPrice, float64(ln.Quantity)*ln.UnitPrice, ln.Size); err != nil {
			return "", err
		}
	}

	if o.DiscountID != "" {
		if err := consumeTx(tx, o.DiscountID); err != nil {
			return "", err
		}
	}

	paymentID := uuid.NewString()
	if _, err := tx.Exec(`
		INSERT INTO payments(id, order_id, method, amount, card_number, exp_date, card_holder)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, paymentID, o.OrderID, o.PaymentMethod, o.FinalAmount, o.CardMasked, o.CardExpDate, o.CardHolder); err != nil {
		return "", err
	}

	if _, err := tx.Exec(`
		INSERT INTO bills(id, order_id, payment_id, bill_date, total_amount)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP, ?)
	`, uuid.NewString(), o.OrderID, paymentID, o.FinalAmount); err != nil {
		return "", err
	}

	// Tracking numbers are random six-digit values; verify uniqueness before
	// insert and regenerate on a hit. The unique index backstops the check.
	var tracking string
	for i := 0; i < trackingAttempts; i++ {
		candidate := nextTracking()
		var taken int
		if err := tx.Get(&taken, `SELECT COUNT(*) FROM shipments WHERE tracking_number = ?`, candidate); err != nil {
			return "", err
		}
		if taken == 0 {
			tracking = candidate
			break
		}
	}
	if tracking == "" {
		return "", fmt.Errorf("could not allocate a unique tracking number after %d attempts", trackingAttempts)
	}

	if _, err := tx.Exec(`
		INSERT INTO shipments(id, order_id, address, city, state, postal_code, country, tracking_number, shipping_date, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, 'PROCESSING')
	`, uuid.NewString(), o.OrderID, o.Shipping.Address, o.Shipping.City, o.Shipping.State, o.Shipping.PostalCode, o.Shipping.Country, tracking); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return tracking, nil
}

// ---------- Read models ----------

type OrderSummary struct {
	ID             string  `db:"id" json:"orderId"`
	CustomerID     string  `db:"customer_id" json:"customerId"`
	OrderDate      string  `db:"order_date" json:"orderDate"`
	TotalAmount    float64 `db:"total_amount" json:"totalAmount"`
	DiscountAmount float64 `db:"discount_amount" json:"discountAmount"`
	FinalAmount    float64 `db:"final_amount" json:"finalAmount"`
	Status         string  `db:"status" json:"status"`
}

type TrackedItem struct {
	ProductID  string  `db:"product_id" json:"productId"`
	Name       string  `db:"name" json:"name"`
	Quantity   int     `db:"quantity" json:"quantity"`
	UnitPrice  float64 `db:"unit_price" json:"unitPrice"`
	TotalPrice float64 `db:"total_price" json:"totalPrice"`
	Size       string  `db:"size" json:"size,omitempty"`
}

type TrackedOrder struct {
	Order    OrderSummary  `json:"order"`
	Items    []TrackedItem `json:"items"`
	Shipment struct {
		TrackingNumber string `db:"tracking_number" json:"trackingNumber"`
		Status         string `db:"status" json:"status"`
		ShippingDate   string `db:"shipping_date" json:"shippingDate"`
		City           string `db:"city" json:"city,omitempty"`
		State          string `db:"state" json:"state,omitempty"`
	} `json:"shipment"`
	Payment struct {
		Method string  `db:"method" json:"method"`
		Amount float64 `db:"amount" json:"amount"`
	} `json:"payment"`
}

// ByTracking loads the full customer-facing view for a tracking number.
func (r *OrderRepo) ByTracking(trackingNumber string) (TrackedOrder, error) {
	var out TrackedOrder

	var orderID string
	err := r.db.Get(&orderID, `SELECT order_id FROM shipments WHERE tracking_number = ?`, trackingNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return out, domain.ErrOrderNotFound
	}
	if err != nil {
		return out, err
	}

	if err := r.db.Get(&out.Order, `
		SELECT id, customer_id, order_date, total_amount, discount_amount, final_amount, status
		FROM orders WHERE id = ?
	`, orderID); err != nil {
		return out, err
	}
	if err := r.db.Select(&out.Items, `
		SELECT oi.product_id, p.name, oi.quantity, oi.unit_price, oi.total_price, oi.size
		FROM order_items oi JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ?
		ORDER BY p.name
	`, orderID); err != nil {
		return out, err
	}
	if err := r.db.Get(&out.Shipment, `
		SELECT tracking_number, status, COALESCE(shipping_date,'') AS shipping_date, city, state
		FROM shipments WHERE order_id = ?
	`, orderID); err != nil {
		return out, err
	}
	if err := r.db.Get(&out.Payment, `
		SELECT method, amount FROM payments WHERE order_id = ?
	`, orderID); err != nil {
		return out, err
	}
	return out, nil
}

func (r *OrderRepo) ListByCustomer(customerID string) ([]OrderSummary, error) {
	var out []OrderSummary
	err := r.db.Select(&out, `
		SELECT id, customer_id, order_date, total_amount, discount_amount, final_amount, status
		FROM orders
		WHERE customer_id = ?
		ORDER BY datetime(order_date) DESC
	`, customerID)
	return out, err
}

func (r *OrderRepo) ListLatest(limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []OrderSummary
	err := r.db.Select(&out, `
		SELECT id, customer_id, order_date, total_amount, discount_amount, final_amount, status
		FROM orders
		ORDER BY datetime(order_date) DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	res, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
