// Package validation enregistre les règles de validation custom utilisées
// par les tags binding des handlers. Une requête mal formée est rejetée par
// gin avant d'atteindre les services.
package validation

import (
	"net/mail"
	"strings"

	"orvia_back_end/internal/config"
	"orvia_back_end/internal/utils"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register branche les validateurs custom sur le moteur de binding gin :
//   - password : au moins 8 caractères, une lettre et un chiffre
//   - tldemail : adresse email bien formée dont le TLD est autorisé
func Register(cfg *config.Config) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		password := fl.Field().String()
		return len(password) >= 8 && utils.IsPasswordComplexEnough(password)
	})

	v.RegisterValidation("tldemail", func(fl validator.FieldLevel) bool {
		return IsAllowedEmail(fl.Field().String(), cfg.AllowedEmailTLDs)
	})
}

// IsAllowedEmail vérifie la grammaire de l'adresse et restreint le TLD à la
// liste configurée.
func IsAllowedEmail(email string, allowedTLDs []string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}

	at := strings.LastIndex(email, "@")
	domain := email[at+1:]
	dot := strings.LastIndex(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}
	tld := strings.ToLower(domain[dot+1:])

	for _, allowed := range allowedTLDs {
		if tld == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}
