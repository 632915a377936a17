package model

// Product is the merchant-facing view of a Shopify product, flattened
// from the Admin API response for listing and editing.
type Product struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Status        string      `json:"status"`
	TotalVariants int         `json:"total_variants"`
	MinPrice      string      `json:"min_price,omitempty"`
	MaxPrice      string      `json:"max_price,omitempty"`
	CostRange     *CostRange  `json:"cost_range,omitempty"`
	Variants      []Variant   `json:"variants,omitempty"`
}

type CostRange struct {
	MinCost      float64 `json:"min_cost"`
	MaxCost      float64 `json:"max_cost"`
	CurrencyCode string  `json:"currency_code"`
}

type Variant struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	SKU             string  `json:"sku,omitempty"`
	Price           string  `json:"price"`
	InventoryItemID string  `json:"inventory_item_id"`
	Cost            *string `json:"cost,omitempty"`
	CostCurrency    string  `json:"cost_currency,omitempty"`
	OnHand          *int    `json:"on_hand,omitempty"`
	Available       *int    `json:"available,omitempty"`
}

type Location struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ProductPage struct {
	Products    []Product `json:"products"`
	HasNextPage bool      `json:"has_next_page"`
	EndCursor   string    `json:"end_cursor,omitempty"`
}
