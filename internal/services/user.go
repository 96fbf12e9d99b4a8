package services

import (
	"context"
	"errors"

	"orvia_back_end/internal/apperr"
	"orvia_back_end/internal/config"
	"orvia_back_end/internal/models"
	"orvia_back_end/internal/store"
	"orvia_back_end/internal/utils"

	"github.com/google/uuid"
)

// UserService gère l'inscription, l'authentification par mot de passe et
// l'adresse de livraison. Le portefeuille et l'adresse reçoivent leurs
// valeurs par défaut à la création du compte.
type UserService struct {
	cfg   *config.Config
	users store.UserStore
}

func NewUserService(cfg *config.Config, users store.UserStore) *UserService {
	return &UserService{cfg: cfg, users: users}
}

// Register crée un compte. L'email doit être libre ; le mot de passe est
// stocké uniquement sous forme de hash argon2id.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal("Failed to check email", err)
	}
	if taken {
		return nil, apperr.InvalidRequest("Email already taken")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperr.Internal("Failed to hash password", err)
	}

	user := &models.User{
		ID:          uuid.NewString(),
		Name:        name,
		Email:       email,
		Password:    hash,
		Role:        models.RoleUser,
		WalletMoney: s.cfg.DefaultWalletMoney,
		Address:     s.cfg.DefaultAddress,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Deux inscriptions concurrentes : le LWT du store tranche.
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, apperr.InvalidRequest("Email already taken")
		}
		return nil, apperr.Internal("Failed to create user", err)
	}
	return user, nil
}

// Authenticate vérifie le couple email/mot de passe et retourne l'utilisateur.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Unauthorized("Incorrect email or password")
	}
	if err != nil {
		return nil, apperr.Internal("Failed to fetch user", err)
	}

	ok, err := utils.VerifyPassword(password, user.Password)
	if err != nil || !ok {
		return nil, apperr.Unauthorized("Incorrect email or password")
	}
	return user, nil
}

// GetByID retourne un utilisateur par son identifiant.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Internal("Failed to fetch user", err)
	}
	return user, nil
}

// SetAddress remplace l'adresse de livraison et persiste l'utilisateur.
func (s *UserService) SetAddress(ctx context.Context, user *models.User, address string) error {
	user.Address = address
	if err := s.users.Save(ctx, user); err != nil {
		return apperr.Internal("Failed to save user", err)
	}
	return nil
}
