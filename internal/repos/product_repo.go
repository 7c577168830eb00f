package repos

import (
	"webstore/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT
	    id, name, COALESCE(type,'') AS type, COALESCE(description,'') AS description,
	    price, COALESCE(sizes_json,'[]') AS sizes_json, COALESCE(image,'') AS image,
	    active, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  WHERE id = ?
	`, id)
	return p, err
}

func (r *ProductRepo) List(limit, offset int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT
	    id, name, COALESCE(type,'') AS type, COALESCE(description,'') AS description,
	    price, COALESCE(sizes_json,'[]') AS sizes_json, COALESCE(image,'') AS image,
	    active, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  WHERE active = 1
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?
	`, limit, offset)
	return out, err
}

// Search filters by free text, product type and price window. Empty
// arguments are skipped; maxPrice <= 0 means no upper bound.
func (r *ProductRepo) Search(q, ptype string, minPrice, maxPrice float64, limit, offset int) ([]domain.Product, error) {
	where := `active = 1`
	args := []any{}
	if q != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)`
		args = append(args, "%"+q+"%", "%"+q+"%")
	}
	if ptype != "" {
		where += ` AND type = ?`
		args = append(args, ptype)
	}
	if minPrice > 0 {
		where += ` AND price >= ?`
		args = append(args, minPrice)
	}
	if maxPrice > 0 {
		where += ` AND price <= ?`
		args = append(args, maxPrice)
	}

	query := `
	  SELECT
	    id, name, COALESCE(type,'') AS type, COALESCE(description,'') AS description,
	    price, COALESCE(sizes_json,'[]') AS sizes_json, COALESCE(image,'') AS image,
	    active, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  WHERE ` + where + `
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []domain.Product
	err := r.db.Select(&out, query, args...)
	return out, err
}

func (r *ProductRepo) Types() ([]string, error) {
	var out []string
	err := r.db.Select(&out, `
	  SELECT DISTINCT type FROM products
	  WHERE type IS NOT NULL AND type != '' AND active = 1
	  ORDER BY type
	`)
	return out, err
}
