package services_test

import (
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"webstore/internal/domain"
	"webstore/internal/repos"
	"webstore/internal/services"
)

var reTrack = regexp.MustCompile(`^TRK[1-9][0-9]{5}$`)

// checkoutDB opens a seeded in-memory store. Seed data gives us
// tee-classic (40 in stock), sneaker-retro (7), jeans-slim (0) and the
// SAVE10 (10%) and SPRING20 (20%) codes.
func checkoutDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return db
}

func newCheckoutSvc(db *sqlx.DB) *services.CheckoutService {
	return services.NewCheckoutService(
		repos.NewProductRepo(db),
		repos.NewInventoryRepo(db),
		services.NewDiscountService(repos.NewDiscountRepo(db)),
		repos.NewOrderRepo(db),
	)
}

func rowCounts(t *testing.T, db *sqlx.DB) (orders, items, payments, bills, shipments int) {
	t.Helper()
	for _, q := range []struct {
		dst   *int
		table string
	}{
		{&orders, "orders"}, {&items, "order_items"}, {&payments, "payments"},
		{&bills, "bills"}, {&shipments, "shipments"},
	} {
		if err := db.Get(q.dst, `SELECT COUNT(*) FROM `+q.table); err != nil {
			t.Fatalf("count %s: %v", q.table, err)
		}
	}
	return
}

func baseInput() services.CheckoutInput {
	return services.CheckoutInput{
		CustomerID:    "c-alice",
		PaymentMethod: "CARD",
		Card: domain.CardDetails{
			Number:  "4111 1111 1111 1111",
			ExpDate: "12/27",
			CVV:     "123",
			Holder:  "Alice",
		},
		Shipping: domain.ShippingAddress{
			Address:    "12 Main St",
			City:       "College Park",
			State:      "MD",
			PostalCode: "20742",
			Country:    "USA",
		},
	}
}

func TestCheckoutCreatesAllRowsAtomically(t *testing.T) {
	db := checkoutDB(t)
	svc := newCheckoutSvc(db)

	in := baseInput()
	in.Lines = []domain.CartLine{
		{ProductID: "tee-classic", Quantity: 2, UnitPrice: 19.99, Size: "M"},
		{ProductID: "sneaker-retro", Quantity: 1, UnitPrice: 89.00, Size: "10"},
	}

	tracking, err := svc.Place(in)
	if err != nil {
		t.Fatal(err)
	}
	if !reTrack.MatchString(tracking) {
		t.Fatalf("bad tracking number %q", tracking)
	}

	orders, items, payments, bills, shipments := rowCounts(t, db)
	if orders != 1 || payments != 1 || bills != 1 || shipments != 1 {
		t.Fatalf("want 1/1/1/1 rows, got orders=%d payments=%d bills=%d shipments=%d", orders, payments, bills, shipments)
	}
	if items != 2 {
		t.Fatalf("want 2 order items, got %d", items)
	}

	// every table row references the same order
	var n int
	if err := db.Get(&n, `
		SELECT COUNT(*) FROM orders o
		JOIN payments p ON p.order_id = o.id
		JOIN bills b ON b.order_id = o.id
		JOIN shipments s ON s.order_id = o.id
	`); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("cross-references broken, joined rows = %d", n)
	}

	var final float64
	if err := db.Get(&final, `SELECT final_amount FROM orders`); err != nil {
		t.Fatal(err)
	}
	if final != 128.98 {
		t.Fatalf("want final 128.98, got %v", final)
	}

	inv := repos.NewInventoryRepo(db)
	if qty, _ := inv.Qty("tee-classic"); qty != 38 {
		t.Fatalf("tee stock: want 38, got %d", qty)
	}
	if qty, _ := inv.Qty("sneaker-retro"); qty != 6 {
		t.Fatalf("sneaker stock: want 6, got %d", qty)
	}

	// the CVV is verified but must never touch the database
	var masked string
	if err := db.Get(&masked, `SELECT card_number FROM payments`); err != nil {
		t.Fatal(err)
	}
	if masked != "************1111" {
		t.Fatalf("card not masked: %q", masked)
	}
}

func TestCheckoutAppliesSave10(t *testing.T) {
	db := checkoutDB(t)
	svc := newCheckoutSvc(db)

	in := baseInput()
	in.DiscountCode = "SAVE10"
	in.Lines = []domain.CartLine{
		{ProductID: "tee-classic", Quantity: 4, UnitPrice: 25.00, Size: "L"},
	}

	if _, err := svc.Place(in); err != nil {
		t.Fatal(err)
	}

	var o struct {
		Total    float64 `db:"total_amount"`
		Discount float64 `db:"discount_amount"`
		Final    float64 `db:"final_amount"`
	}
	if err := db.Get(&o, `SELECT total_amount, discount_amount, final_amount FROM orders`); err != nil {
		t.Fatal(err)
	}
	if o.Total != 100.00 || o.Discount != 10.00 || o.Final != 90.00 {
		t.Fatalf("want 100/10/90, got %+v", o)
	}

	// one use burned, in the same transaction
	var uses int
	if err := db.Get(&uses, `SELECT remaining_uses FROM discounts WHERE code='SAVE10'`); err != nil {
		t.Fatal(err)
	}
	if uses != 99 {
		t.Fatalf("want 99 remaining uses, got %d", uses)
	}
}

func TestCheckoutUnknownCouponCommitsNothing(t *testing.T) {
	db := checkoutDB(t)
	svc := newCheckoutSvc(db)

	in := baseInput()
	in.DiscountCode = "NOPE99"
	in.Lines = []domain.CartLine{{ProductID: "tee-classic", Quantity: 1, UnitPrice: 19.99}}

	_, err := svc.Place(in)
	if !errors.Is(err, domain.ErrInvalidCoupon) {
		t.Fatalf("want ErrInvalidCoupon, got %v", err)
	}

	orders, items, payments, bills, shipments := rowCounts(t, db)
	if orders+items+payments+bills+shipments != 0 {
		t.Fatalf("failed checkout left rows behind: %d/%d/%d/%d/%d", orders, items, payments, bills, shipments)
	}
	inv := repos.NewInventoryRepo(db)
	if qty, _ := inv.Qty("tee-classic"); qty != 40 {
		t.Fatalf("stock touched on failure: %d", qty)
	}
}

func TestCheckoutOutOfStock(t *testing.T) {
	db := checkoutDB(t)
	svc := newCheckoutSvc(db)

	in := baseInput()
	in.Lines = []domain.CartLine{{ProductID: "jeans-slim", Quantity: 1, UnitPrice: 64.00, Size: "32"}}

	_, err := svc.Place(in)
	if !errors.Is(err, domain.ErrOutOfStock) {
		t.Fatalf("want ErrOutOfStock, got %v", err)
	}
	orders, items, payments, bills, shipments := rowCounts(t, db)
	if orders+items+payments+bills+shipments != 0 {
		t.Fatal("out-of-stock checkout left rows behind")
	}
}

func TestCheckoutRejectsBadLines(t *testing.T) {
	db := checkoutDB(t)
	svc := newCheckoutSvc(db)

	cases := []struct {
		name  string
		lines []domain.CartLine
	}{
		{"empty cart", nil},
		{"zero quantity", []domain.CartLine{{ProductID: "tee-classic", Quantity: 0, UnitPrice: 19.99}}},
		{"negative price", []domain.CartLine{{ProductID: "tee-classic", Quantity: 1, UnitPrice: -5}}},
		{"unknown product", []domain.CartLine{{ProductID: "no-such", Quantity: 1, UnitPrice: 5}}},
		{"duplicate line", []domain.CartLine{
			{ProductID: "tee-classic", Quantity: 1, UnitPrice: 19.99, Size: "M"},
			{ProductID: "tee-classic", Quantity: 2, UnitPrice: 19.99, Size: "M"},
		}},
		{"mixed valid and invalid", []domain.CartLine{
			{ProductID: "tee-classic", Quantity: 1, UnitPrice: 19.99},
			{ProductID: "sneaker-retro", Quantity: -1, UnitPrice: 89.00},
		}},
	}
	for _, tc := range cases {
		in := baseInput()
		in.Lines = tc.lines
		_, err := svc.Place(in)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%s: want ErrInvalidInput, got %v", tc.name, err)
		}
	}

	// a bad line anywhere must abort the whole cart, not just its own row
	orders, items, _, _, _ := rowCounts(t, db)
	if orders != 0 || items != 0 {
		t.Fatalf("invalid carts wrote rows: orders=%d items=%d", orders, items)
	}
}

func TestCheckoutIdempotentResubmit(t *testing.T) {
	db := checkoutDB(t)
	svc := newCheckoutSvc(db)

	in := baseInput()
	in.IdempotencyKey = "req-12345"
	in.Lines = []domain.CartLine{{ProductID: "sneaker-retro", Quantity: 2, UnitPrice: 89.00, Size: "9"}}

	first, err := svc.Place(in)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Place(in)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("replay returned different tracking: %q vs %q", first, second)
	}

	orders, _, _, _, shipments := rowCounts(t, db)
	if orders != 1 || shipments != 1 {
		t.Fatalf("replay duplicated the order: orders=%d shipments=%d", orders, shipments)
	}
	inv := repos.NewInventoryRepo(db)
	if qty, _ := inv.Qty("sneaker-retro"); qty != 5 {
		t.Fatalf("replay decremented stock twice: %d", qty)
	}
}

func TestCheckoutConcurrentNoOversell(t *testing.T) {
	db := checkoutDB(t)
	svc := newCheckoutSvc(db)

	// sneaker-retro starts at 7; 12 buyers of one unit each
	const buyers = 12
	var wg sync.WaitGroup
	errs := make([]error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := baseInput()
			in.Lines = []domain.CartLine{{ProductID: "sneaker-retro", Quantity: 1, UnitPrice: 89.00, Size: "9"}}
			_, errs[i] = svc.Place(in)
		}(i)
	}
	wg.Wait()

	won, lost := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, domain.ErrOutOfStock):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 7 || lost != 5 {
		t.Fatalf("want 7 wins / 5 out-of-stock, got %d/%d", won, lost)
	}

	inv := repos.NewInventoryRepo(db)
	if qty, _ := inv.Qty("sneaker-retro"); qty != 0 {
		t.Fatalf("oversell or undersell: final stock %d", qty)
	}
	var orders int
	if err := db.Get(&orders, `SELECT COUNT(*) FROM orders`); err != nil {
		t.Fatal(err)
	}
	if orders != 7 {
		t.Fatalf("want 7 orders, got %d", orders)
	}
}

func TestCheckoutTrackingNumbersUnique(t *testing.T) {
	db := checkoutDB(t)
	svc := newCheckoutSvc(db)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		in := baseInput()
		in.Lines = []domain.CartLine{{ProductID: "tee-classic", Quantity: 1, UnitPrice: 19.99}}
		tn, err := svc.Place(in)
		if err != nil {
			t.Fatal(err)
		}
		if seen[tn] {
			t.Fatalf("duplicate tracking number %q", tn)
		}
		seen[tn] = true
	}
}
