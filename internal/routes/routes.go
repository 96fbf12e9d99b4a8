package routes

import (
	"time"

	"orvia_back_end/internal/cache"
	"orvia_back_end/internal/handlers"
	"orvia_back_end/internal/middleware"
	"orvia_back_end/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Cart    *handlers.CartHandler
	Product *handlers.ProductHandler
	User    *handlers.UserHandler
	Wallet  *handlers.WalletHandler
}

func Register(r *gin.Engine, h Handlers, issuer *services.TokenIssuer, userCache *cache.Cache) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	auth := middleware.AuthRequired(issuer, userCache)

	v1 := r.Group("/v1")

	v1.POST("/auth/register", h.Auth.Register)
	v1.POST("/auth/login", h.Auth.Login)

	v1.GET("/products", h.Product.List)
	v1.GET("/products/search", h.Product.Search)
	v1.GET("/products/:productId", h.Product.Get)
	v1.POST("/products", auth, middleware.RequireAdmin, h.Product.Create)
	v1.POST("/products/:productId/image", auth, middleware.RequireAdmin, h.Product.UploadImage)

	v1.GET("/users/:userId", auth, h.User.Get)
	v1.PUT("/users/:userId", auth, h.User.SetAddress)

	v1.GET("/cart", auth, h.Cart.Get)
	v1.POST("/cart", auth, h.Cart.Add)
	v1.PUT("/cart", auth, h.Cart.Update)
	v1.PUT("/cart/checkout", auth, h.Cart.Checkout)
	v1.DELETE("/cart/:productId", auth, h.Cart.Delete)

	v1.POST("/wallet/topup", auth, h.Wallet.TopUp)
}
