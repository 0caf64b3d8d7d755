package handlers

import (
	"github.com/jmoiron/sqlx"

	"storefront/internal/repos"
	"storefront/internal/services"
)

type Deps struct {
	ProductHandler  *ProductHandler
	CategoryHandler *CategoryHandler
	UserHandler     *UserHandler
	OrderHandler    *OrderHandler
	PageHandler     *PageHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	userRepo := repos.NewUserRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	accountSvc := services.NewAccountService(userRepo)
	orderSvc := services.NewOrderService(orderRepo, prodRepo)

	return &Deps{
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		UserHandler:     &UserHandler{Accounts: accountSvc},
		OrderHandler:    &OrderHandler{Orders: orderSvc},
		PageHandler:     &PageHandler{Catalog: catalogSvc, Orders: orderSvc},
	}
}
