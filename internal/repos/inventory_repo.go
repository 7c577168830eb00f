package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"webstore/internal/domain"
)

type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// Row used by admin inventory pages
type InventoryRow struct {
	ProductID     string  `db:"product_id" json:"productId"`
	Name          string  `db:"name" json:"name"`
	Type          string  `db:"type" json:"type,omitempty"`
	Price         float64 `db:"price" json:"price"`
	StockQuantity int     `db:"stock_quantity" json:"stockQuantity"`
}

// ListAll returns all inventory rows with product names (for /api/admin/inventory)
func (r *InventoryRepo) ListAll() ([]InventoryRow, error) {
	var rows []InventoryRow
	err := r.db.Select(&rows, `
		SELECT i.product_id, p.name, COALESCE(p.type,'') AS type, p.price, i.stock_quantity
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		ORDER BY p.name
	`)
	return rows, err
}

// LowStock returns rows at or below the given threshold, worst first.
func (r *InventoryRepo) LowStock(threshold int) ([]InventoryRow, error) {
	var rows []InventoryRow
	err := r.db.Select(&rows, `
		SELECT i.product_id, p.name, COALESCE(p.type,'') AS type, p.price, i.stock_quantity
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE i.stock_quantity <= ?
		ORDER BY i.stock_quantity, p.name
	`, threshold)
	return rows, err
}

// Qty returns current stock for a product.
// If no row exists, it returns sql.ErrNoRows from sqlx.Get.
func (r *InventoryRepo) Qty(productID string) (int, error) {
	var qty int
	err := r.db.Get(&qty, `
		SELECT stock_quantity FROM inventory
		WHERE product_id = ?
	`, productID)
	if err != nil {
		return 0, err
	}
	return qty, nil
}

// Decrement atomically subtracts "by" units if enough stock exists. The
// WHERE guard is the only serialization point against oversell; callers
// must never replace it with a read-then-write pair.
func (r *InventoryRepo) Decrement(productID string, by int) error {
	res, err := r.db.Exec(`
		UPDATE inventory
		SET stock_quantity = stock_quantity - ?, updated_at = CURRENT_TIMESTAMP
		WHERE product_id = ? AND stock_quantity >= ?
	`, by, productID, by)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: product %s", domain.ErrOutOfStock, productID)
	}
	return nil
}

// decrementTx is the in-transaction form used by the checkout commit.
func decrementTx(tx *sqlx.Tx, productID string, by int) error {
	res, err := tx.Exec(`
		UPDATE inventory
		SET stock_quantity = stock_quantity - ?, updated_at = CURRENT_TIMESTAMP
		WHERE product_id = ? AND stock_quantity >= ?
	`, by, productID, by)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: product %s", domain.ErrOutOfStock, productID)
	}
	return nil
}

// UpsertQty sets stock for productID, creating the row if needed.
func (r *InventoryRepo) UpsertQty(productID string, qty int) error {
	_, err := r.db.Exec(`
		INSERT INTO inventory(product_id, stock_quantity, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(product_id) DO UPDATE SET stock_quantity = excluded.stock_quantity, updated_at = CURRENT_TIMESTAMP
	`, productID, qty)
	return err
}
