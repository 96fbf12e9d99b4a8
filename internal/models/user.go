package models

import "time"

// Rôles applicatifs. Les comptes sont créés "user" ; le rôle "admin" ouvre
// l'écriture du catalogue.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID          string    `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	Role        string    `json:"role"`
	WalletMoney float64   `json:"walletMoney"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsAdmin indique si l'utilisateur porte le rôle admin.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasSetNonDefaultAddress indique si l'utilisateur a remplacé l'adresse
// sentinelle posée à la création du compte.
func (u *User) HasSetNonDefaultAddress(defaultAddress string) bool {
	return u.Address != defaultAddress
}
