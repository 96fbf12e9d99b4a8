package models

type Product struct {
	ID        string   `json:"_id"`
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Cost      float64  `json:"cost"`
	Rating    int      `json:"rating"`
	ImageURLs []string `json:"image_urls"`
}
