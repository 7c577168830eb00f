package repos

import (
	"github.com/jmoiron/sqlx"

	"webstore/internal/domain"
)

type DiscountRepo struct{ db *sqlx.DB }

func NewDiscountRepo(db *sqlx.DB) *DiscountRepo { return &DiscountRepo{db: db} }

// ByCode returns the discount row for a code regardless of validity; the
// service layer decides whether the window and usage cap still hold.
func (r *DiscountRepo) ByCode(code string) (domain.Discount, error) {
	var d domain.Discount
	err := r.db.Get(&d, `
		SELECT id, code, percentage, valid_from, valid_until, remaining_uses, created_at
		FROM discounts
		WHERE UPPER(code) = UPPER(?)
	`, code)
	return d, err
}

func (r *DiscountRepo) Create(d domain.Discount) error {
	_, err := r.db.Exec(`
		INSERT INTO discounts(id, code, percentage, valid_from, valid_until, remaining_uses)
		VALUES (?, ?, ?, ?, ?, ?)
	`, d.ID, d.Code, d.Percentage, d.ValidFrom, d.ValidUntil, d.RemainingUses)
	return err
}

// consumeTx burns one use inside the checkout transaction. The floor guard
// mirrors the inventory decrement: rows-affected zero means the code was
// exhausted by a concurrent checkout after resolution.
func consumeTx(tx *sqlx.Tx, discountID string) error {
	res, err := tx.Exec(`
		UPDATE discounts
		SET remaining_uses = remaining_uses - 1
		WHERE id = ? AND remaining_uses > 0
	`, discountID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrInvalidCoupon
	}
	return nil
}
