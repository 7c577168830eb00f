package handlers

import (
	"github.com/jmoiron/sqlx"

	"webstore/internal/config"
	"webstore/internal/repos"
	"webstore/internal/services"
)

type Deps struct {
	CatalogHandler   *CatalogHandler
	InventoryHandler *InventoryHandler
	DiscountHandler  *DiscountHandler
	CheckoutHandler  *CheckoutHandler
	OrderHandler     *OrderHandler
	WishlistHandler  *WishlistHandler
	ChatHandler      *ChatHandler
	AdminHandler     *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	prodRepo := repos.NewProductRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	discRepo := repos.NewDiscountRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	wishRepo := repos.NewWishlistRepo(db)
	chatRepo := repos.NewChatRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo)
	invSvc := services.NewInventoryService(invRepo, cfg.LowStockThreshold)
	discSvc := services.NewDiscountService(discRepo)
	checkoutSvc := services.NewCheckoutService(prodRepo, invRepo, discSvc, orderRepo)
	wishSvc := services.NewWishlistService(wishRepo)
	chatSvc := services.NewChatService(chatRepo)

	return &Deps{
		CatalogHandler:   &CatalogHandler{Catalog: catalogSvc},
		InventoryHandler: &InventoryHandler{Inv: invSvc},
		DiscountHandler:  &DiscountHandler{Discounts: discSvc},
		CheckoutHandler:  &CheckoutHandler{Checkout: checkoutSvc},
		OrderHandler:     &OrderHandler{Repo: orderRepo},
		WishlistHandler:  &WishlistHandler{Wish: wishSvc},
		ChatHandler:      &ChatHandler{Chat: chatSvc},
		AdminHandler:     &AdminHandler{Orders: orderRepo, Inv: invRepo, LowStock: cfg.LowStockThreshold},
	}
}
