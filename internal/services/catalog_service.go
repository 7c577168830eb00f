package services

import (
	"webstore/internal/domain"
	"webstore/internal/repos"
)

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

func (s *CatalogService) Get(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) List(limit, offset int) ([]domain.Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 24
	}
	if offset < 0 {
		offset = 0
	}
	return s.Prods.List(limit, offset)
}

func (s *CatalogService) Search(q, ptype string, minPrice, maxPrice float64, limit, offset int) ([]domain.Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 24
	}
	if offset < 0 {
		offset = 0
	}
	return s.Prods.Search(q, ptype, minPrice, maxPrice, limit, offset)
}

func (s *CatalogService) Types() ([]string, error) {
	return s.Prods.Types()
}
