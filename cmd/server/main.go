package main

import (
	"net/http"

	"kisaan-be/internal/auth"
	"kisaan-be/internal/category"
	"kisaan-be/internal/config"
	"kisaan-be/internal/db"
	"kisaan-be/internal/delivery"
	"kisaan-be/internal/logger"
	"kisaan-be/internal/middleware"
	"kisaan-be/internal/order"
	"kisaan-be/internal/product"
	"kisaan-be/internal/store"
	"kisaan-be/internal/user"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	storeRepo := store.NewRepository(database)
	storeSvc := store.NewService(storeRepo)
	storeHandler := store.NewHandler(storeSvc)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)
	categoryHandler := category.NewHandler(categorySvc)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, storeSvc)
	productHandler := product.NewHandler(productSvc)

	policy := order.PolicyLoose
	if cfg.StrictOrderTransitions {
		policy = order.PolicyStrict
	}
	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, storeSvc, policy)
	orderHandler := order.NewHandler(orderSvc)

	deliveryRepo := delivery.NewRepository(database)
	deliverySvc := delivery.NewService(deliveryRepo)
	deliveryHandler := delivery.NewHandler(deliverySvc)

	router := chi.NewRouter()

	router.Use(logger.RequestIDMiddleware)
	router.Use(logger.LoggingMiddleware)
	router.Use(middleware.Authenticate)
	router.Use(middleware.RateLimit)

	router.Route("/api/v2", func(r chi.Router) {
		r.Post("/users/register", userHandler.Register)
		r.Post("/users/login", userHandler.Login)

		r.Get("/stores/{slug}/public", storeHandler.GetStoreBySlug)
		r.Get("/stores/{storeID}/categories", categoryHandler.ListCategories)
		r.Get("/stores/{storeID}/products", productHandler.ListStoreProducts)
		r.Get("/products/{uuid}", productHandler.GetProduct)
		r.Get("/products/{uuid}/variants", productHandler.ListVariants)

		// Seller routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleSeller))
			r.Post("/stores", storeHandler.CreateStore)
			r.Get("/stores", storeHandler.ListSellerStores)
			r.Post("/stores/{storeID}/categories", categoryHandler.AddCategory)
			r.Post("/stores/{storeID}/products", productHandler.CreateProduct)
			r.Put("/products/{uuid}", productHandler.UpdateProduct)
			r.Post("/products/{uuid}/variants", productHandler.CreateVariant)
			r.Put("/variants/{uuid}", productHandler.UpdateVariant)
			r.Delete("/variants/{uuid}", productHandler.DeleteVariant)

			r.Get("/stores/{storeID}/orders", orderHandler.ListStoreOrders)
			r.Get("/orders/{uuid}", orderHandler.GetOrder)
			r.Patch("/orders/{uuid}/status", orderHandler.UpdateStatus)
		})

		// Delivery partner routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleDeliveryPartner))
			r.Get("/delivery-partner/assignments", deliveryHandler.ListAssignments)
			r.Get("/delivery-partner/assignments/{uuid}", deliveryHandler.GetAssignment)
			r.Put("/delivery-partner/assignments/{uuid}/status", deliveryHandler.UpdateAssignmentStatus)

			r.Get("/delivery-requests/partner", deliveryHandler.ListRequests)
			r.Put("/delivery-requests/{uuid}/accept", deliveryHandler.AcceptRequest)
			r.Put("/delivery-requests/{uuid}/reject", deliveryHandler.RejectRequest)
		})
	})

	logger.L().Info("Running server", zap.String("port", cfg.AppPort))

	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		logger.L().Fatal("Error starting server", zap.Error(err))
	}
}
