package handlers

import (
	"errors"

	"orvia_back_end/internal/apperr"

	"github.com/gin-gonic/gin"
)

// respondError traduit une erreur du cœur métier en réponse HTTP : le Kind
// donne le status, le message est renvoyé tel quel.
func respondError(c *gin.Context, err error) {
	var e *apperr.Error
	if errors.As(err, &e) {
		c.JSON(e.Kind.HTTPStatus(), gin.H{"error": e.Message})
		return
	}
	c.JSON(apperr.KindInternal.HTTPStatus(), gin.H{"error": "Internal server error"})
}
