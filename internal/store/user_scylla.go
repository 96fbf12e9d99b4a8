package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orvia_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ScyllaUserStore persiste les utilisateurs dans deux tables :
// users (clé user_id) et users_by_email (clé email, table de correspondance).
// L'unicité de l'email est garantie par un INSERT ... IF NOT EXISTS sur
// users_by_email avant l'insertion dans users.
type ScyllaUserStore struct {
	session *gocql.Session
}

func NewScyllaUserStore(session *gocql.Session) *ScyllaUserStore {
	return &ScyllaUserStore{session: session}
}

func (s *ScyllaUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	user := &models.User{ID: id}
	err = s.session.Query(`SELECT email, password, name, role, wallet_money, address, created_at, updated_at
		FROM users WHERE user_id = ?`, gocql.UUID(uid)).WithContext(ctx).Scan(
		&user.Email, &user.Password, &user.Name, &user.Role, &user.WalletMoney, &user.Address,
		&user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scylla: find user by id: %w", err)
	}
	return user, nil
}

func (s *ScyllaUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var userID gocql.UUID
	err := s.session.Query("SELECT user_id FROM users_by_email WHERE email = ?", email).
		WithContext(ctx).Scan(&userID)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scylla: find user by email: %w", err)
	}
	return s.FindByID(ctx, userID.String())
}

func (s *ScyllaUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var userID gocql.UUID
	err := s.session.Query("SELECT user_id FROM users_by_email WHERE email = ?", email).
		WithContext(ctx).Scan(&userID)
	if errors.Is(err, gocql.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("scylla: exists by email: %w", err)
	}
	return true, nil
}

func (s *ScyllaUserStore) Create(ctx context.Context, user *models.User) error {
	uid, err := uuid.Parse(user.ID)
	if err != nil {
		return fmt.Errorf("scylla: create user: id invalide: %w", err)
	}

	// Réserve l'email d'abord : c'est le point d'unicité.
	applied, err := s.session.Query("INSERT INTO users_by_email (email, user_id) VALUES (?, ?) IF NOT EXISTS",
		user.Email, gocql.UUID(uid)).WithContext(ctx).MapScanCAS(map[string]interface{}{})
	if err != nil {
		return fmt.Errorf("scylla: claim email: %w", err)
	}
	if !applied {
		return ErrAlreadyExists
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	err = s.session.Query(`INSERT INTO users (user_id, email, password, name, role, wallet_money, address, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gocql.UUID(uid), user.Email, user.Password, user.Name, user.Role, user.WalletMoney,
		user.Address, user.CreatedAt, user.UpdatedAt).WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("scylla: insert user: %w", err)
	}
	return nil
}

func (s *ScyllaUserStore) Save(ctx context.Context, user *models.User) error {
	uid, err := uuid.Parse(user.ID)
	if err != nil {
		return fmt.Errorf("scylla: save user: id invalide: %w", err)
	}

	user.UpdatedAt = time.Now()
	err = s.session.Query("UPDATE users SET name = ?, role = ?, wallet_money = ?, address = ?, updated_at = ? WHERE user_id = ?",
		user.Name, user.Role, user.WalletMoney, user.Address, user.UpdatedAt, gocql.UUID(uid)).
		WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("scylla: save user: %w", err)
	}
	return nil
}
