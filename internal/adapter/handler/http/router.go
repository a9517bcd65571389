package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jsocialogs/socialshop/internal/adapter/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	productHandler *ProductHandler,
	orderHandler *OrderHandler,
	paymentHandler *PaymentHandler,
	walletHandler *WalletHandler,
	customerHandler *CustomerHandler) (*Router, error) {

	router := gin.New()
	router.Use(gin.Recovery())

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		products := api.Group("/products")
		{
			products.GET("", productHandler.ListProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("", productHandler.CreateProduct)
			products.PATCH("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}

		orders := api.Group("/orders")
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", orderHandler.ListOrdersByCustomer)
			orders.POST("/:id/pay", orderHandler.StartPayment)
		}

		payments := api.Group("/payments")
		{
			payments.GET("/verify", paymentHandler.VerifyPayment)
		}

		wallets := api.Group("/wallets")
		{
			wallets.POST("", walletHandler.Post)
			wallets.GET("", walletHandler.GetWallet)
		}

		customers := api.Group("/customers")
		{
			customers.GET("/:email", customerHandler.GetCustomerStats)
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
