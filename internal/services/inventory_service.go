package services

import (
	"database/sql"
	"errors"

	"webstore/internal/domain"
	"webstore/internal/repos"
)

type InventoryService struct {
	Inv      *repos.InventoryRepo
	LowStock int
}

func NewInventoryService(inv *repos.InventoryRepo, lowStock int) *InventoryService {
	if lowStock <= 0 {
		lowStock = 5
	}
	return &InventoryService{Inv: inv, LowStock: lowStock}
}

// CheckAvailability converts a stock count into IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func (s *InventoryService) CheckAvailability(productID string) (domain.Availability, error) {
	qty, err := s.Inv.Qty(productID)
	if err != nil {
		// If no inventory row exists, treat as 0.
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Availability{Status: "OUT_OF_STOCK", Qty: 0}, nil
		}
		return domain.Availability{}, err
	}

	status := "OUT_OF_STOCK"
	switch {
	case qty > s.LowStock:
		status = "IN_STOCK"
	case qty > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: qty}, nil
}
