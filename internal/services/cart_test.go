package services

import (
	"context"
	"errors"
	"testing"

	"orvia_back_end/internal/apperr"
	"orvia_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	productA = "aaaaaaaa-0000-0000-0000-000000000001"
	productB = "aaaaaaaa-0000-0000-0000-000000000002"
)

func newTestCartManager(t *testing.T, products *memProductStore, carts *memCartStore, users *memUserStore, mailer Mailer) *CartManager {
	t.Helper()
	return NewCartManager(newTestConfig(t), products, carts, users, mailer)
}

func TestGetCartByUser_NoCart(t *testing.T) {
	m := newTestCartManager(t, newMemProductStore(), newMemCartStore(), newMemUserStore(), nil)

	_, err := m.GetCartByUser(context.Background(), testUser(t))
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.EqualError(t, err, "User does not have a cart")
}

func TestAddProductToCart_CreatesCartLazily(t *testing.T) {
	user := testUser(t)
	carts := newMemCartStore()
	m := newTestCartManager(t, newMemProductStore(testProduct(productA, 100)), carts, newMemUserStore(user), nil)

	cart, err := m.AddProductToCart(context.Background(), user, productA, 2)
	require.NoError(t, err)

	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, productA, cart.CartItems[0].Product.ID)
	assert.Equal(t, 2, cart.CartItems[0].Quantity)
	assert.Equal(t, "PAYMENT_OPTION_DEFAULT", cart.PaymentOption)

	stored, err := carts.FindByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	assert.Len(t, stored.CartItems, 1)
}

func TestAddProductToCart_UnknownProduct(t *testing.T) {
	user := testUser(t)
	m := newTestCartManager(t, newMemProductStore(), newMemCartStore(), newMemUserStore(user), nil)

	_, err := m.AddProductToCart(context.Background(), user, productA, 1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidRequest, apperr.KindOf(err))
	assert.EqualError(t, err, "Product doesn't exist in database")
}

func TestAddProductToCart_DuplicateProduct(t *testing.T) {
	user := testUser(t)
	carts := newMemCartStore()
	m := newTestCartManager(t, newMemProductStore(testProduct(productA, 100)), carts, newMemUserStore(user), nil)

	_, err := m.AddProductToCart(context.Background(), user, productA, 1)
	require.NoError(t, err)

	_, err = m.AddProductToCart(context.Background(), user, productA, 3)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidRequest, apperr.KindOf(err))
	assert.EqualError(t, err, "Product already in cart. Use the cart sidebar to update or remove product from cart")

	// Seule la première insertion est conservée
	stored, err := carts.FindByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	require.Len(t, stored.CartItems, 1)
	assert.Equal(t, 1, stored.CartItems[0].Quantity)
}

func TestAddProductToCart_CartCreationFails(t *testing.T) {
	user := testUser(t)
	carts := newMemCartStore()
	carts.createErr = errors.New("write timeout")
	m := newTestCartManager(t, newMemProductStore(testProduct(productA, 100)), carts, newMemUserStore(user), nil)

	_, err := m.AddProductToCart(context.Background(), user, productA, 1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestAddProductToCart_SnapshotIsIndependent(t *testing.T) {
	user := testUser(t)
	products := newMemProductStore(testProduct(productA, 100))
	carts := newMemCartStore()
	m := newTestCartManager(t, products, carts, newMemUserStore(user), nil)

	_, err := m.AddProductToCart(context.Background(), user, productA, 1)
	require.NoError(t, err)

	// Le prix catalogue change après l'ajout
	products.byID[productA].Cost = 999

	stored, err := carts.FindByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	assert.Equal(t, float64(100), stored.CartItems[0].Product.Cost)
}

func TestUpdateProductInCart(t *testing.T) {
	user := testUser(t)
	cart := &models.Cart{
		Email: user.Email,
		CartItems: []models.CartItem{
			{Product: *testProduct(productA, 100), Quantity: 1},
			{Product: *testProduct(productB, 50), Quantity: 4},
		},
	}
	m := newTestCartManager(t,
		newMemProductStore(testProduct(productA, 100), testProduct(productB, 50)),
		newMemCartStore(cart), newMemUserStore(user), nil)

	updated, err := m.UpdateProductInCart(context.Background(), user, productA, 7)
	require.NoError(t, err)

	// Seule la quantité visée change, la cardinalité est inchangée
	require.Len(t, updated.CartItems, 2)
	assert.Equal(t, 7, updated.CartItems[0].Quantity)
	assert.Equal(t, productB, updated.CartItems[1].Product.ID)
	assert.Equal(t, 4, updated.CartItems[1].Quantity)
}

func TestUpdateProductInCart_Errors(t *testing.T) {
	user := testUser(t)

	t.Run("produit inconnu au catalogue", func(t *testing.T) {
		m := newTestCartManager(t, newMemProductStore(), newMemCartStore(), newMemUserStore(user), nil)
		_, err := m.UpdateProductInCart(context.Background(), user, productA, 2)
		assert.EqualError(t, err, "Product doesn't exist in database")
		assert.Equal(t, apperr.KindInvalidRequest, apperr.KindOf(err))
	})

	t.Run("pas de panier", func(t *testing.T) {
		m := newTestCartManager(t, newMemProductStore(testProduct(productA, 100)), newMemCartStore(), newMemUserStore(user), nil)
		_, err := m.UpdateProductInCart(context.Background(), user, productA, 2)
		assert.EqualError(t, err, "User does not have a cart. Use POST to create cart and add a product")
		assert.Equal(t, apperr.KindInvalidRequest, apperr.KindOf(err))
	})

	t.Run("produit absent du panier", func(t *testing.T) {
		cart := &models.Cart{Email: user.Email, CartItems: []models.CartItem{{Product: *testProduct(productB, 50), Quantity: 1}}}
		m := newTestCartManager(t, newMemProductStore(testProduct(productA, 100)), newMemCartStore(cart), newMemUserStore(user), nil)
		_, err := m.UpdateProductInCart(context.Background(), user, productA, 2)
		assert.EqualError(t, err, "Product not in cart")
		assert.Equal(t, apperr.KindInvalidRequest, apperr.KindOf(err))
	})
}

func TestDeleteProductFromCart(t *testing.T) {
	user := testUser(t)
	cart := &models.Cart{
		Email: user.Email,
		CartItems: []models.CartItem{
			{Product: *testProduct(productA, 100), Quantity: 1},
			{Product: *testProduct(productB, 50), Quantity: 2},
		},
	}
	carts := newMemCartStore(cart)
	m := newTestCartManager(t, newMemProductStore(), carts, newMemUserStore(user), nil)

	err := m.DeleteProductFromCart(context.Background(), user, productA)
	require.NoError(t, err)

	stored, err := carts.FindByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	require.Len(t, stored.CartItems, 1)
	assert.Equal(t, productB, stored.CartItems[0].Product.ID)
}

func TestDeleteProductFromCart_Errors(t *testing.T) {
	user := testUser(t)

	t.Run("pas de panier", func(t *testing.T) {
		m := newTestCartManager(t, newMemProductStore(), newMemCartStore(), newMemUserStore(user), nil)
		err := m.DeleteProductFromCart(context.Background(), user, productA)
		assert.EqualError(t, err, "User does not have a cart")
		assert.Equal(t, apperr.KindInvalidRequest, apperr.KindOf(err))
	})

	t.Run("produit jamais ajouté", func(t *testing.T) {
		cart := &models.Cart{Email: user.Email, CartItems: []models.CartItem{{Product: *testProduct(productB, 50), Quantity: 1}}}
		carts := newMemCartStore(cart)
		m := newTestCartManager(t, newMemProductStore(), carts, newMemUserStore(user), nil)
		err := m.DeleteProductFromCart(context.Background(), user, productA)
		assert.EqualError(t, err, "Product not in cart")
		assert.Len(t, cart.CartItems, 1)
	})
}

func TestCheckout_Success(t *testing.T) {
	user := testUser(t) // wallet 500, adresse renseignée
	cart := &models.Cart{
		Email:     user.Email,
		CartItems: []models.CartItem{{Product: *testProduct(productA, 100), Quantity: 2}},
	}
	users := newMemUserStore(user)
	carts := newMemCartStore(cart)
	mailer := &fakeMailer{}
	m := newTestCartManager(t, newMemProductStore(), carts, users, mailer)

	err := m.Checkout(context.Background(), user)
	require.NoError(t, err)

	assert.Equal(t, float64(300), user.WalletMoney)
	assert.Empty(t, cart.CartItems)
	assert.Equal(t, 1, users.saveCalls)
	assert.Equal(t, 1, carts.saveCalls)

	// Email de confirmation best-effort
	assert.Equal(t, user.Email, mailer.sentTo)
	assert.Equal(t, float64(200), mailer.sentTotal)
	assert.Len(t, mailer.sentItems, 1)
}

func TestCheckout_NoCart(t *testing.T) {
	user := testUser(t)
	m := newTestCartManager(t, newMemProductStore(), newMemCartStore(), newMemUserStore(user), nil)

	err := m.Checkout(context.Background(), user)
	assert.EqualError(t, err, "User does not have a cart")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCheckout_EmptyCart(t *testing.T) {
	user := testUser(t)
	cart := &models.Cart{Email: user.Email}
	m := newTestCartManager(t, newMemProductStore(), newMemCartStore(cart), newMemUserStore(user), nil)

	err := m.Checkout(context.Background(), user)
	assert.EqualError(t, err, "User's cart doesn't have any product")
	assert.Equal(t, apperr.KindInvalidRequest, apperr.KindOf(err))
}

func TestCheckout_AddressNotSet(t *testing.T) {
	user := testUser(t)
	user.Address = "ADDRESS_NOT_SET"
	cart := &models.Cart{
		Email:     user.Email,
		CartItems: []models.CartItem{{Product: *testProduct(productA, 100), Quantity: 1}},
	}
	users := newMemUserStore(user)
	carts := newMemCartStore(cart)
	m := newTestCartManager(t, newMemProductStore(), carts, users, nil)

	err := m.Checkout(context.Background(), user)
	assert.EqualError(t, err, "Address is not set")
	assert.Equal(t, apperr.KindInvalidRequest, apperr.KindOf(err))

	// Aucune mutation
	assert.Equal(t, float64(500), user.WalletMoney)
	assert.Len(t, cart.CartItems, 1)
	assert.Zero(t, users.saveCalls)
	assert.Zero(t, carts.saveCalls)
}

func TestCheckout_InsufficientBalance(t *testing.T) {
	user := testUser(t)
	user.WalletMoney = 50
	cart := &models.Cart{
		Email:     user.Email,
		CartItems: []models.CartItem{{Product: *testProduct(productA, 100), Quantity: 2}},
	}
	users := newMemUserStore(user)
	carts := newMemCartStore(cart)
	m := newTestCartManager(t, newMemProductStore(), carts, users, nil)

	err := m.Checkout(context.Background(), user)
	assert.EqualError(t, err, "Wallet balance is insufficient")
	assert.Equal(t, apperr.KindInvalidRequest, apperr.KindOf(err))

	assert.Equal(t, float64(50), user.WalletMoney)
	assert.Len(t, cart.CartItems, 1)
	assert.Zero(t, users.saveCalls)
	assert.Zero(t, carts.saveCalls)
}

func TestCheckout_ExactBalance(t *testing.T) {
	user := testUser(t)
	user.WalletMoney = 200
	cart := &models.Cart{
		Email:     user.Email,
		CartItems: []models.CartItem{{Product: *testProduct(productA, 100), Quantity: 2}},
	}
	m := newTestCartManager(t, newMemProductStore(), newMemCartStore(cart), newMemUserStore(user), nil)

	err := m.Checkout(context.Background(), user)
	require.NoError(t, err)
	assert.Zero(t, user.WalletMoney)
}

func TestCheckout_UserSaveFails(t *testing.T) {
	user := testUser(t)
	cart := &models.Cart{
		Email:     user.Email,
		CartItems: []models.CartItem{{Product: *testProduct(productA, 100), Quantity: 1}},
	}
	users := newMemUserStore(user)
	users.saveErr = errors.New("write timeout")
	carts := newMemCartStore(cart)
	m := newTestCartManager(t, newMemProductStore(), carts, users, nil)

	err := m.Checkout(context.Background(), user)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	// Le panier n'est pas vidé si le débit n'a pas été persisté
	assert.Len(t, cart.CartItems, 1)
	assert.Zero(t, carts.saveCalls)
}

func TestCheckout_MailerFailureDoesNotFailCheckout(t *testing.T) {
	user := testUser(t)
	cart := &models.Cart{
		Email:     user.Email,
		CartItems: []models.CartItem{{Product: *testProduct(productA, 100), Quantity: 1}},
	}
	mailer := &fakeMailer{err: errors.New("smtp down")}
	m := newTestCartManager(t, newMemProductStore(), newMemCartStore(cart), newMemUserStore(user), mailer)

	err := m.Checkout(context.Background(), user)
	require.NoError(t, err)
	assert.Empty(t, cart.CartItems)
}

func TestCartItemUniquenessAfterMutations(t *testing.T) {
	user := testUser(t)
	carts := newMemCartStore()
	m := newTestCartManager(t,
		newMemProductStore(testProduct(productA, 100), testProduct(productB, 50)),
		carts, newMemUserStore(user), nil)

	ctx := context.Background()
	_, err := m.AddProductToCart(ctx, user, productA, 1)
	require.NoError(t, err)
	_, err = m.AddProductToCart(ctx, user, productB, 2)
	require.NoError(t, err)
	_, err = m.UpdateProductInCart(ctx, user, productA, 5)
	require.NoError(t, err)
	require.NoError(t, m.DeleteProductFromCart(ctx, user, productB))
	_, err = m.AddProductToCart(ctx, user, productB, 3)
	require.NoError(t, err)

	stored, err := carts.FindByEmail(ctx, user.Email)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, item := range stored.CartItems {
		assert.False(t, seen[item.Product.ID], "produit %s en double", item.Product.ID)
		seen[item.Product.ID] = true
	}
	assert.Len(t, stored.CartItems, 2)
}
