package handlers

import (
	"log"
	"net/http"

	"orvia_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

type WalletHandler struct{}

func NewWalletHandler() *WalletHandler {
	return &WalletHandler{}
}

// POST /v1/wallet/topup — crée un PaymentIntent Stripe pour recharger le
// portefeuille. Le crédit effectif est appliqué par le webhook de paiement,
// pas par cet endpoint.
func (h *WalletHandler) TopUp(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		Amount float64 `json:"amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(input.Amount * 100)),
		Currency: stripe.String("eur"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"user_id": user.ID,
			"email":   user.Email,
			"purpose": "wallet_topup",
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		log.Printf("❌ Erreur Stripe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création paiement"})
		return
	}

	log.Printf("💳 Recharge portefeuille créée: %s (%.2f€) pour %s", intent.ID, input.Amount, user.Email)

	c.JSON(http.StatusOK, gin.H{
		"client_secret": intent.ClientSecret,
		"payment_id":    intent.ID,
		"amount":        input.Amount,
		"currency":      "eur",
	})
}
