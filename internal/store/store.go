// Package store expose la persistance des utilisateurs, produits et paniers.
// Les services ne voient que les interfaces ; les implémentations ScyllaDB
// vivent dans ce package et traduisent gocql.ErrNotFound en ErrNotFound.
package store

import (
	"context"
	"errors"

	"orvia_back_end/internal/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

type UserStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Create insère l'utilisateur ; ErrAlreadyExists si l'email est déjà pris.
	Create(ctx context.Context, user *models.User) error
	// Save persiste les mutations en mémoire (wallet, adresse, nom).
	Save(ctx context.Context, user *models.User) error
}

type ProductStore interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Save(ctx context.Context, product *models.Product) error
}

type CartStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Cart, error)
	// Create insère le panier ; ErrAlreadyExists si l'email a déjà un panier.
	Create(ctx context.Context, cart *models.Cart) error
	Save(ctx context.Context, cart *models.Cart) error
}
