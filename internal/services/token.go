package services

import (
	"fmt"
	"time"

	"orvia_back_end/internal/apperr"
	"orvia_back_end/internal/config"
	"orvia_back_end/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Types de token. Seul l'access token est émis par ce serveur.
const TokenTypeAccess = "ACCESS"

// TokenIssuer fabrique des access tokens signés HS256 et bornés dans le temps.
type TokenIssuer struct {
	secret         []byte
	accessLifetime time.Duration
}

func NewTokenIssuer(cfg *config.Config) *TokenIssuer {
	return &TokenIssuer{
		secret:         []byte(cfg.JWTSecret),
		accessLifetime: cfg.AccessTokenLifetime(),
	}
}

// GenerateToken signe un payload {sub, iat, exp, type} avec le secret du
// serveur. expiresAt est un instant absolu en secondes epoch.
func (t *TokenIssuer) GenerateToken(userID string, expiresAt int64, tokenType string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"iat":  time.Now().Unix(),
		"exp":  expiresAt,
		"type": tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// GenerateAuthTokens émet l'access token d'un utilisateur, expiration
// now + durée configurée.
func (t *TokenIssuer) GenerateAuthTokens(user *models.User) (*models.AuthTokens, error) {
	expiresAt := time.Now().Add(t.accessLifetime)

	token, err := t.GenerateToken(user.ID, expiresAt.Unix(), TokenTypeAccess)
	if err != nil {
		return nil, apperr.Internal("Failed to generate token", err)
	}

	return &models.AuthTokens{
		Access: models.TokenWithExpiry{
			Token:   token,
			Expires: expiresAt,
		},
	}, nil
}

// Verify contrôle signature et expiration, et retourne le sujet (user id).
// Un token invalide, expiré ou d'un autre type est rejeté avant que la
// requête n'atteigne le cœur métier.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return "", apperr.Unauthorized("Please authenticate")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperr.Unauthorized("Please authenticate")
	}
	if tokenType, _ := claims["type"].(string); tokenType != TokenTypeAccess {
		return "", apperr.Unauthorized("Please authenticate")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", apperr.Unauthorized("Please authenticate")
	}
	return sub, nil
}
