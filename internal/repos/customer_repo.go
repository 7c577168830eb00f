package repos

import (
	"webstore/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CustomerRepo struct{ DB *sqlx.DB }

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo { return &CustomerRepo{DB: db} }

func (r *CustomerRepo) ByEmail(email string) (*domain.Customer, error) {
	var u domain.Customer
	err := r.DB.Get(&u, `SELECT id,email,name,password_hash,role FROM customers WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *CustomerRepo) ByID(id string) (*domain.Customer, error) {
	var u domain.Customer
	err := r.DB.Get(&u, `SELECT id,email,name,password_hash,role FROM customers WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *CustomerRepo) BindSession(token, customerID string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,customer_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET customer_id=excluded.customer_id,last_seen=CURRENT_TIMESTAMP`, token, customerID)
	return err
}

func (r *CustomerRepo) SessionCustomer(token string) (*domain.Customer, error) {
	var u domain.Customer
	err := r.DB.Get(&u, `
      SELECT c.id,c.email,c.name,c.password_hash,c.role
      FROM sessions s
      JOIN customers c ON c.id=s.customer_id
      WHERE s.id=?`, token)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *CustomerRepo) UnbindSession(token string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET customer_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, token)
	return err
}
