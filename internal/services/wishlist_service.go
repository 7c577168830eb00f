package services

import (
	"webstore/internal/repos"
)

type WishlistService struct {
	Wish *repos.WishlistRepo
}

func NewWishlistService(w *repos.WishlistRepo) *WishlistService {
	return &WishlistService{Wish: w}
}

func (s *WishlistService) Save(sessionID, productID string) error {
	id, err := s.Wish.Ensure(sessionID)
	if err != nil {
		return err
	}
	return s.Wish.Add(id, productID)
}

func (s *WishlistService) Unsave(sessionID, productID string) error {
	id, err := s.Wish.Ensure(sessionID)
	if err != nil {
		return err
	}
	return s.Wish.Remove(id, productID)
}

func (s *WishlistService) List(sessionID string) ([]repos.WishlistRow, error) {
	id, err := s.Wish.Ensure(sessionID)
	if err != nil {
		return nil, err
	}
	return s.Wish.List(id)
}
