package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"orvia_back_end/internal/models"

	"github.com/gocql/gocql"
)

// ScyllaCartStore persiste les paniers dans la table carts, une ligne par
// email (clé primaire). Les lignes de panier, instantanés produit compris,
// sont sérialisées en JSON dans la colonne items.
type ScyllaCartStore struct {
	session *gocql.Session
}

func NewScyllaCartStore(session *gocql.Session) *ScyllaCartStore {
	return &ScyllaCartStore{session: session}
}

func (s *ScyllaCartStore) FindByEmail(ctx context.Context, email string) (*models.Cart, error) {
	var itemsJSON, paymentOption string
	err := s.session.Query("SELECT items, payment_option FROM carts WHERE email = ?", email).
		WithContext(ctx).Scan(&itemsJSON, &paymentOption)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scylla: find cart by email: %w", err)
	}

	cart := &models.Cart{Email: email, PaymentOption: paymentOption}
	if itemsJSON != "" {
		if err := json.Unmarshal([]byte(itemsJSON), &cart.CartItems); err != nil {
			return nil, fmt.Errorf("scylla: decode cart items: %w", err)
		}
	}
	return cart, nil
}

func (s *ScyllaCartStore) Create(ctx context.Context, cart *models.Cart) error {
	itemsJSON, err := json.Marshal(cart.CartItems)
	if err != nil {
		return fmt.Errorf("scylla: encode cart items: %w", err)
	}

	// Clé primaire = email : le LWT garantit un panier par utilisateur.
	applied, err := s.session.Query("INSERT INTO carts (email, items, payment_option, updated_at) VALUES (?, ?, ?, ?) IF NOT EXISTS",
		cart.Email, string(itemsJSON), cart.PaymentOption, time.Now()).
		WithContext(ctx).MapScanCAS(map[string]interface{}{})
	if err != nil {
		return fmt.Errorf("scylla: insert cart: %w", err)
	}
	if !applied {
		return ErrAlreadyExists
	}
	return nil
}

func (s *ScyllaCartStore) Save(ctx context.Context, cart *models.Cart) error {
	itemsJSON, err := json.Marshal(cart.CartItems)
	if err != nil {
		return fmt.Errorf("scylla: encode cart items: %w", err)
	}

	err = s.session.Query("UPDATE carts SET items = ?, payment_option = ?, updated_at = ? WHERE email = ?",
		string(itemsJSON), cart.PaymentOption, time.Now(), cart.Email).
		WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("scylla: save cart: %w", err)
	}
	return nil
}
