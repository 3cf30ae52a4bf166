package models

// Product is a catalog entry. Inventory lives only in process memory.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Variants    []string `json:"variants"`
	Inventory   int      `json:"inventory"`
}

// InventoryUpdateRequest is the body of POST /products.
type InventoryUpdateRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
