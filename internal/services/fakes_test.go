package services

import (
	"context"
	"testing"

	"orvia_back_end/internal/config"
	"orvia_back_end/internal/models"
	"orvia_back_end/internal/store"
)

// --- fakes en mémoire pour les interfaces store ---

type memUserStore struct {
	byID      map[string]*models.User
	byEmail   map[string]*models.User
	createErr error
	saveErr   error
	saveCalls int
}

func newMemUserStore(users ...*models.User) *memUserStore {
	s := &memUserStore{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]*models.User),
	}
	for _, u := range users {
		s.byID[u.ID] = u
		s.byEmail[u.Email] = u
	}
	return s
}

func (s *memUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (s *memUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (s *memUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := s.byEmail[email]
	return ok, nil
}

func (s *memUserStore) Create(ctx context.Context, user *models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	if _, ok := s.byEmail[user.Email]; ok {
		return store.ErrAlreadyExists
	}
	s.byID[user.ID] = user
	s.byEmail[user.Email] = user
	return nil
}

func (s *memUserStore) Save(ctx context.Context, user *models.User) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saveCalls++
	s.byID[user.ID] = user
	s.byEmail[user.Email] = user
	return nil
}

type memProductStore struct {
	byID map[string]*models.Product
}

func newMemProductStore(products ...*models.Product) *memProductStore {
	s := &memProductStore{byID: make(map[string]*models.Product)}
	for _, p := range products {
		s.byID[p.ID] = p
	}
	return s
}

func (s *memProductStore) FindByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memProductStore) List(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (s *memProductStore) Create(ctx context.Context, product *models.Product) error {
	s.byID[product.ID] = product
	return nil
}

func (s *memProductStore) Save(ctx context.Context, product *models.Product) error {
	s.byID[product.ID] = product
	return nil
}

type memCartStore struct {
	byEmail   map[string]*models.Cart
	createErr error
	saveErr   error
	saveCalls int
}

func newMemCartStore(carts ...*models.Cart) *memCartStore {
	s := &memCartStore{byEmail: make(map[string]*models.Cart)}
	for _, c := range carts {
		s.byEmail[c.Email] = c
	}
	return s
}

func (s *memCartStore) FindByEmail(ctx context.Context, email string) (*models.Cart, error) {
	c, ok := s.byEmail[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return c, nil
}

func (s *memCartStore) Create(ctx context.Context, cart *models.Cart) error {
	if s.createErr != nil {
		return s.createErr
	}
	if _, ok := s.byEmail[cart.Email]; ok {
		return store.ErrAlreadyExists
	}
	s.byEmail[cart.Email] = cart
	return nil
}

func (s *memCartStore) Save(ctx context.Context, cart *models.Cart) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saveCalls++
	s.byEmail[cart.Email] = cart
	return nil
}

type fakeMailer struct {
	sentTo    string
	sentTotal float64
	sentItems []models.CartItem
	err       error
}

func (m *fakeMailer) SendOrderConfirmation(to string, items []models.CartItem, total float64) error {
	m.sentTo = to
	m.sentItems = items
	m.sentTotal = total
	return m.err
}

// --- helpers ---

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		JWTSecret:               "test_secret",
		AccessExpirationMinutes: 30,
		DefaultWalletMoney:      500,
		DefaultAddress:          "ADDRESS_NOT_SET",
		DefaultPaymentOption:    "PAYMENT_OPTION_DEFAULT",
		AllowedEmailTLDs:        []string{"com", "net"},
	}
}

func testUser(t *testing.T) *models.User {
	t.Helper()
	return &models.User{
		ID:          "7f8c9f0a-2f5a-4c2e-9d3b-1a2b3c4d5e6f",
		Name:        "crio user",
		Email:       "crio-user@example.com",
		WalletMoney: 500,
		Address:     "123 Main St, Springfield",
	}
}

func testProduct(id string, cost float64) *models.Product {
	return &models.Product{
		ID:       id,
		Name:     "produit " + id,
		Category: "test",
		Cost:     cost,
	}
}
