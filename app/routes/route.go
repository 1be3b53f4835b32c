package routes

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/go-marketplace/app/handlers"
	"github.com/Rakhulsr/go-marketplace/app/handlers/admin"
	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/Rakhulsr/go-marketplace/app/middlewares"
	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/repositories"
	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/Rakhulsr/go-marketplace/app/utils/calc"
	"github.com/Rakhulsr/go-marketplace/app/utils/sessions"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type Deps struct {
	DB       *gorm.DB
	Sessions sessions.SessionStore
	Render   *render.Render
	Pricing  calc.Pricing
	// Notifier is optional.
	Notifier services.OrderNotifier
}

func NewRouter(deps Deps) *mux.Router {
	db, rnd := deps.DB, deps.Render

	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	cartItemRepo := repositories.NewCartItemRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)

	authSvc := services.NewAuthService(userRepo)
	cartSvc := services.NewCartService(db, cartRepo, cartItemRepo, productRepo)
	orderSvc := services.NewOrderService(db, cartRepo, cartItemRepo, productRepo, userRepo, orderRepo, orderItemRepo, deps.Pricing)
	if deps.Notifier != nil {
		orderSvc.SetNotifier(deps.Notifier)
	}
	reviewSvc := services.NewReviewService(db, reviewRepo, productRepo, orderRepo)
	wishlistSvc := services.NewWishlistService(userRepo, productRepo)
	productSvc := services.NewProductService(productRepo, categoryRepo, reviewRepo, userRepo)

	authHandler := handlers.NewAuthHandler(rnd, authSvc, deps.Sessions)
	productHandler := handlers.NewProductHandler(rnd, productSvc, reviewSvc)
	cartHandler := handlers.NewCartHandler(rnd, cartSvc)
	orderHandler := handlers.NewOrderHandler(rnd, orderSvc)
	reviewHandler := handlers.NewReviewHandler(rnd, reviewSvc)
	wishlistHandler := handlers.NewWishlistHandler(rnd, wishlistSvc)
	sellerHandler := handlers.NewSellerHandler(rnd, productSvc, orderSvc)
	adminHandler := admin.NewAdminHandler(rnd, orderSvc)

	requireAuth := middlewares.RequireAuth(rnd)

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteError(rnd, w, http.StatusNotFound, "Route not found", nil)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteError(rnd, w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteSuccess(rnd, w, http.StatusOK, map[string]interface{}{"status": "ok"})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middlewares.SessionAuth(deps.Sessions), middlewares.CartCount(cartSvc))

	api.HandleFunc("/csrf-token", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteSuccess(rnd, w, http.StatusOK, map[string]interface{}{"csrfToken": csrf.Token(r)})
	}).Methods(http.MethodGet)

	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	api.Handle("/auth/me", requireAuth(http.HandlerFunc(authHandler.Me))).Methods(http.MethodGet)

	api.HandleFunc("/categories", productHandler.Categories).Methods(http.MethodGet)
	api.HandleFunc("/products", productHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}/reviews", productHandler.Reviews).Methods(http.MethodGet)
	api.HandleFunc("/products/{slug}", productHandler.Detail).Methods(http.MethodGet)

	cart := api.PathPrefix("/cart").Subrouter()
	cart.Use(requireAuth)
	cart.HandleFunc("", cartHandler.Get).Methods(http.MethodGet)
	cart.HandleFunc("", cartHandler.Clear).Methods(http.MethodDelete)
	cart.HandleFunc("/items", cartHandler.AddItem).Methods(http.MethodPost)
	cart.HandleFunc("/items/{itemID}", cartHandler.UpdateItem).Methods(http.MethodPut)
	cart.HandleFunc("/items/{itemID}", cartHandler.RemoveItem).Methods(http.MethodDelete)

	orders := api.PathPrefix("/orders").Subrouter()
	orders.Use(requireAuth)
	orders.HandleFunc("", orderHandler.Place).Methods(http.MethodPost)
	orders.HandleFunc("", orderHandler.List).Methods(http.MethodGet)
	orders.HandleFunc("/{id}", orderHandler.Get).Methods(http.MethodGet)
	orders.HandleFunc("/{id}/receipt", orderHandler.Receipt).Methods(http.MethodGet)

	reviews := api.PathPrefix("/reviews").Subrouter()
	reviews.Use(requireAuth)
	reviews.HandleFunc("", reviewHandler.Add).Methods(http.MethodPost)
	reviews.HandleFunc("/{id}/helpful", reviewHandler.MarkHelpful).Methods(http.MethodPost)

	wishlist := api.PathPrefix("/wishlist").Subrouter()
	wishlist.Use(requireAuth)
	wishlist.HandleFunc("", wishlistHandler.List).Methods(http.MethodGet)
	wishlist.HandleFunc("/{productID}", wishlistHandler.Add).Methods(http.MethodPost)
	wishlist.HandleFunc("/{productID}", wishlistHandler.Remove).Methods(http.MethodDelete)

	seller := api.PathPrefix("/seller").Subrouter()
	seller.Use(middlewares.RequireRole(rnd, userRepo, models.RoleSeller, models.RoleAdmin))
	seller.HandleFunc("/products", sellerHandler.Products).Methods(http.MethodGet)
	seller.HandleFunc("/products", sellerHandler.CreateProduct).Methods(http.MethodPost)
	seller.HandleFunc("/products/{id}", sellerHandler.UpdateProduct).Methods(http.MethodPut)
	seller.HandleFunc("/products/{id}", sellerHandler.DeleteProduct).Methods(http.MethodDelete)
	seller.HandleFunc("/orders", sellerHandler.Orders).Methods(http.MethodGet)
	seller.HandleFunc("/orders/{id}/status", sellerHandler.UpdateOrderStatus).Methods(http.MethodPut)
	seller.HandleFunc("/reports", sellerHandler.Report).Methods(http.MethodGet)

	adminRoutes := api.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middlewares.RequireRole(rnd, userRepo, models.RoleAdmin))
	adminRoutes.HandleFunc("/orders", adminHandler.GetOrders).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/orders/{id}/status", adminHandler.UpdateOrderStatus).Methods(http.MethodPut)

	return router
}

// WithCSRF guards unsafe methods with gorilla/csrf. Clients fetch a token
// from /api/csrf-token and send it back in X-CSRF-Token.
func WithCSRF(next http.Handler, rnd *render.Render, key []byte, secure bool) http.Handler {
	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.RequestHeader("X-CSRF-Token"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Printf("CSRF: rejected %s %s: %v", r.Method, r.URL.Path, csrf.FailureReason(r))
			helpers.WriteError(rnd, w, http.StatusForbidden, "Invalid CSRF token", nil)
		})),
	)
	return protect(next)
}
