package main

import (
	"log"

	"orvia_back_end/internal/cache"
	"orvia_back_end/internal/config"
	"orvia_back_end/internal/database"
	"orvia_back_end/internal/handlers"
	"orvia_back_end/internal/routes"
	"orvia_back_end/internal/search"
	"orvia_back_end/internal/services"
	"orvia_back_end/internal/storage"
	"orvia_back_end/internal/store"
	"orvia_back_end/internal/utils"
	"orvia_back_end/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
)

func main() {
	cfg := config.Load()

	stripe.Key = cfg.StripeSecretKey
	if stripe.Key == "" {
		log.Println("⚠️ Stripe non configuré — recharge portefeuille désactivée")
	} else {
		log.Println("✅ Stripe initialisé")
	}

	database.Connect(cfg)

	usersSession, err := database.GetUsersSession()
	if err != nil {
		log.Fatalf("❌ Session users indisponible: %v", err)
	}
	productsSession, err := database.GetProductsSession()
	if err != nil {
		log.Fatalf("❌ Session products indisponible: %v", err)
	}
	cartsSession, err := database.GetCartsSession()
	if err != nil {
		log.Fatalf("❌ Session carts indisponible: %v", err)
	}

	userStore := store.NewScyllaUserStore(usersSession)
	productStore := store.NewScyllaProductStore(productsSession)
	cartStore := store.NewScyllaCartStore(cartsSession)

	userCache := cache.New(database.Redis, userStore, productStore)
	searcher := search.NewElasticSearcher(database.Elastic)
	uploader := storage.NewUploader(database.MinIO, cfg)
	mailer := utils.NewOrderMailer(cfg)

	userService := services.NewUserService(cfg, userStore)
	tokenIssuer := services.NewTokenIssuer(cfg)
	productService := services.NewProductService(productStore, searcher)
	cartManager := services.NewCartManager(cfg, productStore, cartStore, userStore, mailer)

	validation.Register(cfg)

	r := gin.Default()
	routes.Register(r, routes.Handlers{
		Auth:    handlers.NewAuthHandler(userService, tokenIssuer),
		Cart:    handlers.NewCartHandler(cartManager, userCache),
		Product: handlers.NewProductHandler(productService, uploader),
		User:    handlers.NewUserHandler(userService, userCache),
		Wallet:  handlers.NewWalletHandler(),
	}, tokenIssuer, userCache)

	log.Println("🚀 Serveur Orvia lancé sur le port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Serveur arrêté: %v", err)
	}
}
