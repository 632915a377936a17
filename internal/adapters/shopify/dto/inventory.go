package dto

type QuantityNode struct {
	Name     string `json:"name,omitempty"`
	Quantity int    `json:"quantity"`
}

type InventoryLevelNode struct {
	ID       string `json:"id,omitempty"`
	Location struct {
		ID string `json:"id,omitempty"`
	} `json:"location,omitempty"`
	Quantities []QuantityNode `json:"quantities,omitempty"`
}

type InventoryLevelsQueryData struct {
	InventoryItem *struct {
		ID              string `json:"id,omitempty"`
		InventoryLevels struct {
			Edges []struct {
				Node InventoryLevelNode `json:"node,omitempty"`
			} `json:"edges,omitempty"`
		} `json:"inventoryLevels,omitempty"`
	} `json:"inventoryItem,omitempty"`
}

type InventoryActivateData struct {
	InventoryActivate struct {
		InventoryLevel *struct {
			ID         string         `json:"id,omitempty"`
			Quantities []QuantityNode `json:"quantities,omitempty"`
		} `json:"inventoryLevel,omitempty"`
		UserErrors []ShopifyUserError `json:"userErrors,omitempty"`
	} `json:"inventoryActivate"`
}

type InventoryAdjustmentChange struct {
	Name                string `json:"name,omitempty"`
	Delta               int    `json:"delta"`
	QuantityAfterChange int    `json:"quantityAfterChange"`
}

type InventorySetQuantitiesData struct {
	InventorySetQuantities struct {
		InventoryAdjustmentGroup *struct {
			Reason  string                      `json:"reason,omitempty"`
			Changes []InventoryAdjustmentChange `json:"changes,omitempty"`
		} `json:"inventoryAdjustmentGroup,omitempty"`
		UserErrors []ShopifyUserError `json:"userErrors,omitempty"`
	} `json:"inventorySetQuantities"`
}

type UnitCostNode struct {
	Amount       string `json:"amount,omitempty"`
	CurrencyCode string `json:"currencyCode,omitempty"`
}

type InventoryItemUpdateData struct {
	InventoryItemUpdate struct {
		InventoryItem *struct {
			ID       string        `json:"id,omitempty"`
			UnitCost *UnitCostNode `json:"unitCost,omitempty"`
			Tracked  bool          `json:"tracked,omitempty"`
		} `json:"inventoryItem,omitempty"`
		UserErrors []ShopifyUserError `json:"userErrors,omitempty"`
	} `json:"inventoryItemUpdate"`
}
