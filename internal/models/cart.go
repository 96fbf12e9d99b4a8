package models

// CartItem est une ligne de panier : un instantané du produit pris au moment
// de l'ajout, plus une quantité. L'instantané est une copie indépendante —
// un changement de prix au catalogue ne modifie pas un panier existant.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart est identifié par l'email de son propriétaire : un panier par
// utilisateur, unicité garantie côté store.
type Cart struct {
	Email         string     `json:"email"`
	CartItems     []CartItem `json:"cartItems"`
	PaymentOption string     `json:"paymentOption"`
}

// FindItem retourne l'index de la ligne portant productID, ou -1.
func (c *Cart) FindItem(productID string) int {
	for i := range c.CartItems {
		if c.CartItems[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// TotalCost est la somme des quantité × coût instantané de chaque ligne.
func (c *Cart) TotalCost() float64 {
	var total float64
	for _, item := range c.CartItems {
		total += float64(item.Quantity) * item.Product.Cost
	}
	return total
}
