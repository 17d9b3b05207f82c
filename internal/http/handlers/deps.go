package handlers

import (
	"ventas/internal/repos"
	"ventas/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	ProductHandler  *ProductHandler
	CustomerHandler *CustomerHandler
	AdminHandler    *AdminHandler
	CartHandler     *CartHandler
	ItemHandler     *ItemHandler
	OrderHandler    *OrderHandler
	Auth            *services.AuthService
}

func NewDeps(db *sqlx.DB) *Deps {
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	userRepo := repos.NewUserRepo(db)

	authSvc := services.NewAuthService(userRepo)
	userSvc := services.NewUserService(userRepo)
	catalogSvc := services.NewCatalogService(prodRepo)
	cartSvc := services.NewCartService(db, cartRepo, prodRepo, userRepo)
	checkoutSvc := services.NewCheckoutService(db)
	orderSvc := services.NewOrderService(orderRepo, cartRepo, userRepo)

	return &Deps{
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		CustomerHandler: &CustomerHandler{Users: userSvc, Auth: authSvc},
		AdminHandler:    &AdminHandler{Users: userSvc, Auth: authSvc},
		CartHandler:     &CartHandler{Cart: cartSvc, Checkout: checkoutSvc},
		ItemHandler:     &ItemHandler{Cart: cartSvc},
		OrderHandler:    &OrderHandler{Orders: orderSvc},
		Auth:            authSvc,
	}
}
