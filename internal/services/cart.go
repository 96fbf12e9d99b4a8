// Package services contient le cœur métier : cycle de vie du panier et
// transaction de checkout (CartManager), émission de tokens (TokenIssuer),
// comptes utilisateur (UserService) et catalogue (ProductService).
package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"orvia_back_end/internal/apperr"
	"orvia_back_end/internal/config"
	"orvia_back_end/internal/models"
	"orvia_back_end/internal/store"
)

// Mailer envoie l'email de confirmation après un checkout validé.
// L'envoi est best-effort : un échec est loggé, jamais remonté au client.
type Mailer interface {
	SendOrderConfirmation(to string, items []models.CartItem, total float64) error
}

// CartManager possède le cycle de vie du panier et la transaction de checkout.
// Toutes les séquences lecture-modification-écriture d'un même utilisateur
// sont sérialisées par un verrou par email : sans lui, deux requêtes
// concurrentes se relisent puis s'écrasent mutuellement (lost update).
type CartManager struct {
	cfg      *config.Config
	products store.ProductStore
	carts    store.CartStore
	users    store.UserStore
	mailer   Mailer

	locks sync.Map // email → *sync.Mutex
}

func NewCartManager(cfg *config.Config, products store.ProductStore, carts store.CartStore, users store.UserStore, mailer Mailer) *CartManager {
	return &CartManager{
		cfg:      cfg,
		products: products,
		carts:    carts,
		users:    users,
		mailer:   mailer,
	}
}

func (m *CartManager) lock(email string) func() {
	v, _ := m.locks.LoadOrStore(email, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// GetCartByUser retourne le panier de l'utilisateur, sans effet de bord.
func (m *CartManager) GetCartByUser(ctx context.Context, user *models.User) (*models.Cart, error) {
	cart, err := m.carts.FindByEmail(ctx, user.Email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("User does not have a cart")
	}
	if err != nil {
		return nil, apperr.Internal("Failed to fetch cart", err)
	}
	return cart, nil
}

// AddProductToCart ajoute une nouvelle ligne au panier de l'utilisateur.
// Le panier est créé paresseusement au premier ajout ; un produit déjà
// présent n'est pas ré-ajouté.
func (m *CartManager) AddProductToCart(ctx context.Context, user *models.User, productID string, quantity int) (*models.Cart, error) {
	defer m.lock(user.Email)()

	product, err := m.products.FindByID(ctx, productID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.InvalidRequest("Product doesn't exist in database")
	}
	if err != nil {
		return nil, apperr.Internal("Failed to fetch product", err)
	}

	cart, err := m.carts.FindByEmail(ctx, user.Email)
	if errors.Is(err, store.ErrNotFound) {
		newCart := &models.Cart{
			Email:         user.Email,
			PaymentOption: m.cfg.DefaultPaymentOption,
			CartItems:     []models.CartItem{{Product: *product, Quantity: quantity}},
		}
		if err := m.carts.Create(ctx, newCart); err != nil {
			return nil, apperr.Internal("Failed to create cart", err)
		}
		return newCart, nil
	}
	if err != nil {
		return nil, apperr.Internal("Failed to fetch cart", err)
	}

	if cart.FindItem(productID) >= 0 {
		return nil, apperr.InvalidRequest("Product already in cart. Use the cart sidebar to update or remove product from cart")
	}

	cart.CartItems = append(cart.CartItems, models.CartItem{Product: *product, Quantity: quantity})
	if err := m.carts.Save(ctx, cart); err != nil {
		return nil, apperr.Internal("Failed to save cart", err)
	}
	return cart, nil
}

// UpdateProductInCart remplace la quantité d'une ligne existante.
func (m *CartManager) UpdateProductInCart(ctx context.Context, user *models.User, productID string, quantity int) (*models.Cart, error) {
	defer m.lock(user.Email)()

	_, err := m.products.FindByID(ctx, productID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.InvalidRequest("Product doesn't exist in database")
	}
	if err != nil {
		return nil, apperr.Internal("Failed to fetch product", err)
	}

	cart, err := m.carts.FindByEmail(ctx, user.Email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.InvalidRequest("User does not have a cart. Use POST to create cart and add a product")
	}
	if err != nil {
		return nil, apperr.Internal("Failed to fetch cart", err)
	}

	idx := cart.FindItem(productID)
	if idx < 0 {
		return nil, apperr.InvalidRequest("Product not in cart")
	}

	cart.CartItems[idx].Quantity = quantity
	if err := m.carts.Save(ctx, cart); err != nil {
		return nil, apperr.Internal("Failed to save cart", err)
	}
	return cart, nil
}

// DeleteProductFromCart retire une ligne du panier, l'ordre des autres
// lignes est conservé.
func (m *CartManager) DeleteProductFromCart(ctx context.Context, user *models.User, productID string) error {
	defer m.lock(user.Email)()

	cart, err := m.carts.FindByEmail(ctx, user.Email)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.InvalidRequest("User does not have a cart")
	}
	if err != nil {
		return apperr.Internal("Failed to fetch cart", err)
	}

	idx := cart.FindItem(productID)
	if idx < 0 {
		return apperr.InvalidRequest("Product not in cart")
	}

	cart.CartItems = append(cart.CartItems[:idx], cart.CartItems[idx+1:]...)
	if err := m.carts.Save(ctx, cart); err != nil {
		return apperr.Internal("Failed to save cart", err)
	}
	return nil
}

// Checkout débite le portefeuille du montant total du panier puis vide le
// panier. Toutes les vérifications passent avant la moindre mutation.
// Les deux écritures (user puis cart) doivent réussir ; il n'y a pas de
// compensation si la seconde échoue — l'échec est remonté en Internal.
func (m *CartManager) Checkout(ctx context.Context, user *models.User) error {
	defer m.lock(user.Email)()

	cart, err := m.carts.FindByEmail(ctx, user.Email)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("User does not have a cart")
	}
	if err != nil {
		return apperr.Internal("Failed to fetch cart", err)
	}

	if len(cart.CartItems) == 0 {
		return apperr.InvalidRequest("User's cart doesn't have any product")
	}

	total := cart.TotalCost()

	if !user.HasSetNonDefaultAddress(m.cfg.DefaultAddress) {
		return apperr.InvalidRequest("Address is not set")
	}

	if user.WalletMoney < total {
		return apperr.InvalidRequest("Wallet balance is insufficient")
	}

	items := cart.CartItems

	user.WalletMoney -= total
	if err := m.users.Save(ctx, user); err != nil {
		return apperr.Internal("Failed to save user", err)
	}

	cart.CartItems = []models.CartItem{}
	if err := m.carts.Save(ctx, cart); err != nil {
		return apperr.Internal("Failed to save cart", err)
	}

	if m.mailer != nil {
		if err := m.mailer.SendOrderConfirmation(user.Email, items, total); err != nil {
			log.Printf("⚠️ Envoi email de confirmation échoué pour %s: %v", user.Email, err)
		}
	}
	return nil
}
