package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"webstore/internal/domain"
	"webstore/internal/repos"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	Customers *repos.CustomerRepo
}

// Login verifies credentials and binds the session token to the customer.
func (s *AuthService) Login(token, email, password string) (*domain.Customer, error) {
	u, err := s.Customers.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Customers.BindSession(token, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(token string) error {
	return s.Customers.UnbindSession(token)
}

func (s *AuthService) Current(token string) (*domain.Customer, error) {
	return s.Customers.SessionCustomer(token)
}
