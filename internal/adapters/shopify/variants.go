package shopify

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"shopify-cost-editor/internal/adapters/shopify/dto"
)

type VariantService interface {
	UpdateCost(ctx context.Context, shopDomain, inventoryItemID string, amount float64, currencyCode string) (CostUpdate, error)
	UpdatePrice(ctx context.Context, shopDomain, productID, variantID, price string) error
}

type CostUpdate struct {
	InventoryItemID string
	Amount          string
	CurrencyCode    string
}

// UpdateCost sets the unit cost of an inventory item. The platform's
// field contract takes the cost as a plain decimal string, not a money
// object.
func (c *Client) UpdateCost(ctx context.Context, shopDomain, inventoryItemID string, amount float64, currencyCode string) (CostUpdate, error) {
	inventoryItemID = strings.TrimSpace(inventoryItemID)
	if inventoryItemID == "" {
		return CostUpdate{}, errors.New("shopify inventory item id is required")
	}

	query := `
	mutation inventoryItemUpdateCost($id: ID!, $input: InventoryItemInput!) {
		inventoryItemUpdate(id: $id, input: $input) {
			inventoryItem {
				id
				unitCost { amount currencyCode }
				tracked
			}
			userErrors { field message }
		}
	}`

	var data dto.InventoryItemUpdateData
	err := c.executeGraphQL(ctx, shopDomain, query, map[string]any{
		"id": inventoryItemID,
		"input": map[string]any{
			"cost": formatMoneyAmount(amount),
		},
	}, &data)
	if err != nil {
		return CostUpdate{}, err
	}

	result := data.InventoryItemUpdate
	if err := userErrorsToError("inventoryItemUpdate", result.UserErrors); err != nil {
		return CostUpdate{}, err
	}
	if result.InventoryItem == nil {
		return CostUpdate{}, errors.New("shopify inventory item update returned no item")
	}

	update := CostUpdate{
		InventoryItemID: result.InventoryItem.ID,
		Amount:          formatMoneyAmount(amount),
		CurrencyCode:    currencyCode,
	}
	if result.InventoryItem.UnitCost != nil {
		update.Amount = result.InventoryItem.UnitCost.Amount
		if result.InventoryItem.UnitCost.CurrencyCode != "" {
			update.CurrencyCode = result.InventoryItem.UnitCost.CurrencyCode
		}
	}
	c.log(fmt.Sprintf("shopify cost updated item=%s cost=%s", inventoryItemID, update.Amount))
	return update, nil
}

// UpdatePrice sets a variant's selling price through the bulk variant
// update mutation shaped for a single variant.
func (c *Client) UpdatePrice(ctx context.Context, shopDomain, productID, variantID, price string) error {
	productID = strings.TrimSpace(productID)
	variantID = strings.TrimSpace(variantID)
	if productID == "" || variantID == "" {
		return errors.New("shopify product id and variant id are required")
	}

	query := `
	mutation productVariantsBulkUpdate($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
		productVariantsBulkUpdate(productId: $productId, variants: $variants) {
			productVariants { id price }
			userErrors { field message }
		}
	}`

	var data dto.ProductVariantsBulkUpdateData
	err := c.executeGraphQL(ctx, shopDomain, query, map[string]any{
		"productId": productID,
		"variants": []map[string]any{
			{
				"id":    variantID,
				"price": price,
			},
		},
	}, &data)
	if err != nil {
		return err
	}

	result := data.ProductVariantsBulkUpdate
	if err := userErrorsToError("productVariantsBulkUpdate", result.UserErrors); err != nil {
		return err
	}
	if len(result.ProductVariants) == 0 {
		return errors.New("shopify variant price update returned no variant")
	}

	c.log(fmt.Sprintf("shopify price updated variant=%s price=%s", variantID, price))
	return nil
}

// FormatMoneyAmount renders an amount the way the Admin API expects
// decimal fields: fixed two decimals, no grouping.
func FormatMoneyAmount(amount float64) string {
	return formatMoneyAmount(amount)
}

func formatMoneyAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
