package repos_test

import (
	"errors"
	"testing"

	"webstore/internal/domain"
	"webstore/internal/repos"
)

func TestDecrementGuard(t *testing.T) {
	db := openSeeded(t)
	inv := repos.NewInventoryRepo(db)

	// sneaker-retro seeds at 7
	if err := inv.Decrement("sneaker-retro", 5); err != nil {
		t.Fatal(err)
	}
	if qty, _ := inv.Qty("sneaker-retro"); qty != 2 {
		t.Fatalf("want 2, got %d", qty)
	}

	// asking for more than remains must not change the row
	err := inv.Decrement("sneaker-retro", 3)
	if !errors.Is(err, domain.ErrOutOfStock) {
		t.Fatalf("want ErrOutOfStock, got %v", err)
	}
	if qty, _ := inv.Qty("sneaker-retro"); qty != 2 {
		t.Fatalf("guarded update still wrote: %d", qty)
	}

	// draining to exactly zero is allowed
	if err := inv.Decrement("sneaker-retro", 2); err != nil {
		t.Fatal(err)
	}
	if qty, _ := inv.Qty("sneaker-retro"); qty != 0 {
		t.Fatalf("want 0, got %d", qty)
	}
	if err := inv.Decrement("sneaker-retro", 1); !errors.Is(err, domain.ErrOutOfStock) {
		t.Fatalf("want ErrOutOfStock at zero, got %v", err)
	}
}

func TestLowStockListing(t *testing.T) {
	db := openSeeded(t)
	inv := repos.NewInventoryRepo(db)

	rows, err := inv.LowStock(7)
	if err != nil {
		t.Fatal(err)
	}
	// jeans-slim (0) and sneaker-retro (7) qualify, worst first
	if len(rows) != 2 {
		t.Fatalf("want 2 rows, got %d", len(rows))
	}
	if rows[0].ProductID != "jeans-slim" || rows[1].ProductID != "sneaker-retro" {
		t.Fatalf("bad order: %s, %s", rows[0].ProductID, rows[1].ProductID)
	}
}

func TestUpsertQty(t *testing.T) {
	db := openSeeded(t)
	inv := repos.NewInventoryRepo(db)

	if err := inv.UpsertQty("jeans-slim", 15); err != nil {
		t.Fatal(err)
	}
	if qty, _ := inv.Qty("jeans-slim"); qty != 15 {
		t.Fatalf("want 15, got %d", qty)
	}
}
