package domain

// Product is a catalog entry. Price is validated non-negative at the
// service boundary; the image field is an opaque URI chosen by the admin.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}
