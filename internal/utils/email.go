package utils

import (
	"fmt"
	"log"
	"strings"

	"orvia_back_end/internal/config"
	"orvia_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

// OrderMailer envoie l'email de confirmation de commande via SMTP.
// Implémente services.Mailer.
type OrderMailer struct {
	cfg *config.Config
}

func NewOrderMailer(cfg *config.Config) *OrderMailer {
	return &OrderMailer{cfg: cfg}
}

func (m *OrderMailer) SendOrderConfirmation(to string, items []models.CartItem, total float64) error {
	if m.cfg.SMTPHost == "" {
		// SMTP non configuré (dev) : on ne bloque pas le checkout
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.MailFrom); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Confirmation de votre commande")
	msg.SetBodyString(mail.TypeTextHTML, orderConfirmationHTML(items, total))

	client, err := mail.NewClient(m.cfg.SMTPHost,
		mail.WithPort(m.cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.cfg.SMTPUsername),
		mail.WithPassword(m.cfg.SMTPPassword),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

func orderConfirmationHTML(items []models.CartItem, total float64) string {
	var rows strings.Builder
	for _, item := range items {
		fmt.Fprintf(&rows, `
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f€</td>
				<td>%.2f€</td>
			</tr>`, item.Product.Name, item.Quantity, item.Product.Cost,
			item.Product.Cost*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande</h2>
		<p>Bonjour,</p>
		<p>Votre commande a été confirmée avec succès et votre portefeuille a été débité.</p>

		<h3>Détails de la commande</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Produit</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">%.2f€</td>
				</tr>
			</tfoot>
		</table>

		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Orvia</strong>
		</p>
	</div>
</body>
</html>`, rows.String(), total)
}
