package dto

type MoneyNode struct {
	Amount       string `json:"amount,omitempty"`
	CurrencyCode string `json:"currencyCode,omitempty"`
}

type VariantNode struct {
	ID            string `json:"id,omitempty"`
	Title         string `json:"title,omitempty"`
	SKU           string `json:"sku,omitempty"`
	Price         string `json:"price,omitempty"`
	InventoryItem *struct {
		ID              string        `json:"id,omitempty"`
		UnitCost        *UnitCostNode `json:"unitCost,omitempty"`
		InventoryLevels *struct {
			Edges []struct {
				Node InventoryLevelNode `json:"node,omitempty"`
			} `json:"edges,omitempty"`
		} `json:"inventoryLevels,omitempty"`
	} `json:"inventoryItem,omitempty"`
}

type ProductNode struct {
	ID            string `json:"id,omitempty"`
	Title         string `json:"title,omitempty"`
	Status        string `json:"status,omitempty"`
	TotalVariants int    `json:"totalVariants,omitempty"`
	PriceRangeV2  *struct {
		MinVariantPrice MoneyNode `json:"minVariantPrice,omitempty"`
		MaxVariantPrice MoneyNode `json:"maxVariantPrice,omitempty"`
	} `json:"priceRangeV2,omitempty"`
	Variants struct {
		Edges []struct {
			Node VariantNode `json:"node,omitempty"`
		} `json:"edges,omitempty"`
	} `json:"variants,omitempty"`
}

type ProductsQueryData struct {
	Products struct {
		PageInfo ShopifyPageInfo `json:"pageInfo,omitempty"`
		Edges    []struct {
			Node ProductNode `json:"node,omitempty"`
		} `json:"edges,omitempty"`
	} `json:"products"`
}

type ProductQueryData struct {
	Product *ProductNode `json:"product,omitempty"`
}

type ProductVariantsBulkUpdateData struct {
	ProductVariantsBulkUpdate struct {
		ProductVariants []struct {
			ID    string `json:"id,omitempty"`
			Price string `json:"price,omitempty"`
		} `json:"productVariants,omitempty"`
		UserErrors []ShopifyUserError `json:"userErrors,omitempty"`
	} `json:"productVariantsBulkUpdate"`
}

type LocationNode struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type LocationsQueryData struct {
	Locations struct {
		Edges []struct {
			Node LocationNode `json:"node,omitempty"`
		} `json:"edges,omitempty"`
	} `json:"locations"`
}
