package middleware

import (
	"net/http"
	"strings"

	"orvia_back_end/internal/cache"
	"orvia_back_end/internal/models"
	"orvia_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

// AuthRequired valide le Bearer token (signature + expiration + type) puis
// résout l'utilisateur et le place dans le contexte gin. Tout token invalide
// est rejeté ici, avant le cœur métier.
func AuthRequired(issuer *services.TokenIssuer, userCache *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token manquant"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Format Authorization invalide"})
			c.Abort()
			return
		}

		userID, err := issuer.Verify(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please authenticate"})
			c.Abort()
			return
		}

		user, err := userCache.GetUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please authenticate"})
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Set("user_id", user.ID)
		c.Set("email", user.Email)
		c.Set("role", user.Role)
		c.Next()
	}
}

// RequireAdmin vérifie que l'utilisateur a le rôle "admin". À placer après
// AuthRequired sur les routes d'écriture du catalogue.
func RequireAdmin(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok || !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		c.Abort()
		return
	}
	c.Next()
}

// CurrentUser retourne l'utilisateur posé par AuthRequired.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
