package domain

import "errors"

// Checkout failure taxonomy. Anything else that surfaces from the write
// sequence is a transaction failure and is logged, not returned verbatim.
var (
	ErrInvalidInput  = errors.New("invalid checkout input")
	ErrInvalidCoupon = errors.New("invalid or expired coupon")
	ErrOutOfStock    = errors.New("insufficient stock")
	ErrOrderNotFound = errors.New("order not found")
)

// CartLine is a client-supplied line item. It is never persisted on its own;
// a successful checkout turns each line into one order_items row.
type CartLine struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Size      string  `json:"size"`
}

type CardDetails struct {
	Number  string `json:"number"`
	ExpDate string `json:"expDate"`
	CVV     string `json:"cvv"`
	Holder  string `json:"holder"`
}

type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type Order struct {
	ID             string  `db:"id"`
	CustomerID     string  `db:"customer_id"`
	OrderDate      string  `db:"order_date"`
	TotalAmount    float64 `db:"total_amount"`
	DiscountID     string  `db:"discount_id"`
	DiscountAmount float64 `db:"discount_amount"`
	FinalAmount    float64 `db:"final_amount"`
	Status         string  `db:"status"`
}

type OrderItem struct {
	OrderID    string  `db:"order_id"`
	ProductID  string  `db:"product_id"`
	Quantity   int     `db:"quantity"`
	UnitPrice  float64 `db:"unit_price"`
	TotalPrice float64 `db:"total_price"`
	Size       string  `db:"size"`
}

type Payment struct {
	ID         string  `db:"id"`
	OrderID    string  `db:"order_id"`
	Method     string  `db:"method"`
	Amount     float64 `db:"amount"`
	CardNumber string  `db:"card_number"` // masked, last four only
	ExpDate    string  `db:"exp_date"`
	CardHolder string  `db:"card_holder"`
}

type Bill struct {
	ID          string  `db:"id"`
	OrderID     string  `db:"order_id"`
	PaymentID   string  `db:"payment_id"`
	BillDate    string  `db:"bill_date"`
	TotalAmount float64 `db:"total_amount"`
}

type Shipment struct {
	ID             string `db:"id"`
	OrderID        string `db:"order_id"`
	Address        string `db:"address"`
	City           string `db:"city"`
	State          string `db:"state"`
	PostalCode     string `db:"postal_code"`
	Country        string `db:"country"`
	TrackingNumber string `db:"tracking_number"`
	ShippingDate   string `db:"shipping_date"`
	Status         string `db:"status"`
}
