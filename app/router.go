package app

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/komoralink/komora/app/businesses"
	"github.com/komoralink/komora/app/catalog"
	"github.com/komoralink/komora/app/categories"
	"github.com/komoralink/komora/app/inventory"
	"github.com/komoralink/komora/app/middleware"
	"github.com/komoralink/komora/app/orders"
	"github.com/komoralink/komora/app/restaurant"
	"github.com/komoralink/komora/app/wallet"
	"github.com/komoralink/komora/models"
	"github.com/komoralink/komora/telemetry"
)

// Repositories groups the data access the HTTP handlers need.
type Repositories struct {
	Categories *models.CategoriesRepository
	Products   *models.ProductsRepository
	Businesses *models.BusinessesRepository
	Restaurant *models.RestaurantRepository
	Inventory  *models.InventoryRepository
	Orders     *models.OrdersRepository
	Wallets    *models.WalletRepository
}

// NewRouter registers every route. Listings of businesses, products and categories are public;
// everything else requires a bearer token.
func NewRouter(repos Repositories, jwtSecret []byte, serviceName string, logger *zap.Logger) http.Handler {
	catalogHandler := catalog.NewCatalogHandler(repos.Products, logger)
	categoryHandler := categories.NewCategoryHandler(repos.Categories, logger)
	businessHandler := businesses.NewBusinessHandler(repos.Businesses, logger)
	restaurantHandler := restaurant.NewRestaurantHandler(repos.Restaurant, repos.Products, repos.Businesses, logger)
	inventoryHandler := inventory.NewInventoryHandler(repos.Inventory, repos.Businesses, logger)
	orderHandler := orders.NewOrderHandler(repos.Orders, repos.Products, repos.Businesses, logger)
	walletHandler := wallet.NewWalletHandler(repos.Wallets, logger)

	auth := middleware.RequireAuth(jwtSecret)
	optional := middleware.OptionalAuth(jwtSecret)
	private := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Public listings
	mux.Handle("GET /businesses", optional(http.HandlerFunc(businessHandler.HandleList)))
	mux.HandleFunc("GET /businesses/{id}", businessHandler.HandleGet)
	mux.HandleFunc("GET /products", catalogHandler.HandleGet)
	mux.HandleFunc("GET /products/{id}", catalogHandler.HandleGetProduct)
	mux.HandleFunc("GET /categories", categoryHandler.HandleGetAll)
	mux.HandleFunc("GET /businesses/{id}/tables", restaurantHandler.HandleListTables)
	mux.HandleFunc("GET /businesses/{id}/menus", restaurantHandler.HandleListMenus)
	mux.HandleFunc("GET /menus/{id}", restaurantHandler.HandleGetMenu)

	// Businesses
	mux.Handle("POST /businesses", private(businessHandler.HandleCreate))
	mux.Handle("PATCH /businesses/{id}", private(businessHandler.HandleUpdate))
	mux.Handle("POST /categories", private(categoryHandler.HandleCreate))

	// Restaurant
	mux.Handle("POST /businesses/{id}/tables", private(restaurantHandler.HandleCreateTable))
	mux.Handle("PATCH /tables/{id}", private(restaurantHandler.HandleUpdateTable))
	mux.Handle("DELETE /tables/{id}", private(restaurantHandler.HandleDeleteTable))
	mux.Handle("POST /businesses/{id}/menus", private(restaurantHandler.HandleCreateMenu))
	mux.Handle("PATCH /menus/{id}", private(restaurantHandler.HandleUpdateMenu))
	mux.Handle("DELETE /menus/{id}", private(restaurantHandler.HandleDeleteMenu))

	// Inventory
	mux.Handle("GET /businesses/{id}/inventory", private(inventoryHandler.HandleList))
	mux.Handle("GET /businesses/{id}/inventory/expiring", private(inventoryHandler.HandleExpiring))
	mux.Handle("POST /inventory/{id}/write-off", private(inventoryHandler.HandleWriteOff))

	// Orders
	mux.Handle("POST /orders", private(orderHandler.HandleCreate))
	mux.Handle("GET /orders", private(orderHandler.HandleList))
	mux.Handle("GET /orders/{id}", private(orderHandler.HandleGet))
	mux.Handle("PATCH /orders/{id}/status", private(orderHandler.HandleUpdateStatus))
	mux.Handle("POST /orders/{id}/pay", private(orderHandler.HandlePay))

	// Wallet
	mux.Handle("GET /wallet", private(walletHandler.HandleGet))
	mux.Handle("POST /wallet/deposit", private(walletHandler.HandleDeposit))
	mux.Handle("POST /wallet/withdraw", private(walletHandler.HandleWithdraw))
	mux.Handle("POST /wallet/transfer", private(walletHandler.HandleTransfer))

	return telemetry.Handler(mux, serviceName)
}
