package shopify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shopify-cost-editor/internal/adapters/shopify/dto"
)

const (
	QuantityOnHand    = "on_hand"
	QuantityAvailable = "available"
)

// ErrMissingQuantities is returned by UpdateStock when neither on-hand
// nor available was requested.
var ErrMissingQuantities = errors.New("shopify stock update requires an on-hand or available quantity")

type InventoryService interface {
	GetQuantity(ctx context.Context, shopDomain, inventoryItemID, locationID, name string) (*int, error)
	UpdateStock(ctx context.Context, shopDomain, inventoryItemID, locationID string, onHand, available *int) ([]AppliedQuantity, error)
}

// AppliedQuantity describes one applied stock change. Delta is computed
// from the last observed value before the mutation and is informational
// only; it is never re-derived from a second query.
type AppliedQuantity struct {
	Name                string `json:"name"`
	Delta               int    `json:"delta"`
	QuantityAfterChange int    `json:"quantityAfterChange"`
}

// GetQuantity returns the named quantity for the item at the location.
// nil means the location does not appear in the item's inventory levels
// (not activated there); 0 means the level exists without quantity rows.
func (c *Client) GetQuantity(ctx context.Context, shopDomain, inventoryItemID, locationID, name string) (*int, error) {
	query := `
	query inventoryLevels($inventoryItemId: ID!) {
		inventoryItem(id: $inventoryItemId) {
			id
			inventoryLevels(first: 10) {
				edges {
					node {
						id
						location { id }
						quantities(names: ["available", "on_hand"]) { name quantity }
					}
				}
			}
		}
	}`

	var data dto.InventoryLevelsQueryData
	err := c.executeGraphQL(ctx, shopDomain, query, map[string]any{
		"inventoryItemId": inventoryItemID,
	}, &data)
	if err != nil {
		if isNotStockedError(err) {
			return nil, nil
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			c.logWarning(fmt.Sprintf("shopify inventory quantity lookup failed item=%s location=%s: %v", inventoryItemID, locationID, err))
			return nil, nil
		}
		return nil, err
	}

	if data.InventoryItem == nil {
		return nil, nil
	}

	for _, edge := range data.InventoryItem.InventoryLevels.Edges {
		level := edge.Node
		if level.Location.ID != locationID {
			continue
		}
		for _, qty := range level.Quantities {
			if qty.Name == name {
				quantity := qty.Quantity
				return &quantity, nil
			}
		}
		// Level exists but carries no quantity rows: stocked with zero.
		zero := 0
		return &zero, nil
	}

	// Location absent from the item's levels: not activated there.
	return nil, nil
}

// activateInventory marks the item as stocked at the location. A user
// error saying the item is already active counts as success and the
// current quantity is re-queried. Any other failure is logged and
// swallowed: the following set-quantity call surfaces the real error if
// activation was in fact required.
func (c *Client) activateInventory(ctx context.Context, shopDomain, inventoryItemID, locationID string) (*int, error) {
	query := `
	mutation inventoryActivate($inventoryItemId: ID!, $locationId: ID!) {
		inventoryActivate(inventoryItemId: $inventoryItemId, locationId: $locationId) {
			inventoryLevel {
				id
				quantities(names: ["available"]) { name quantity }
			}
			userErrors { field message }
		}
	}`

	var data dto.InventoryActivateData
	err := c.executeGraphQL(ctx, shopDomain, query, map[string]any{
		"inventoryItemId": inventoryItemID,
		"locationId":      locationID,
	}, &data)
	if err != nil {
		c.logWarning(fmt.Sprintf("shopify inventory activation failed item=%s location=%s (will try stock update anyway): %v", inventoryItemID, locationID, err))
		return c.GetQuantity(ctx, shopDomain, inventoryItemID, locationID, QuantityAvailable)
	}

	result := data.InventoryActivate
	if len(result.UserErrors) > 0 {
		message := strings.ToLower(result.UserErrors[0].Message)
		if strings.Contains(message, "already") || strings.Contains(message, "activated") || strings.Contains(message, "stocked") {
			return c.GetQuantity(ctx, shopDomain, inventoryItemID, locationID, QuantityAvailable)
		}
		c.logWarning(fmt.Sprintf("shopify inventory activation user errors item=%s location=%s: %v", inventoryItemID, locationID, result.UserErrors))
		return nil, nil
	}

	current := 0
	if result.InventoryLevel != nil && len(result.InventoryLevel.Quantities) > 0 {
		current = result.InventoryLevel.Quantities[0].Quantity
	}
	c.log(fmt.Sprintf("shopify inventory activated item=%s location=%s quantity=%d", inventoryItemID, locationID, current))
	return &current, nil
}

// setQuantity sets the named quantity to an absolute value, bypassing the
// compare-quantity concurrency check.
func (c *Client) setQuantity(ctx context.Context, shopDomain, inventoryItemID, locationID string, quantity int, name string) error {
	query := `
	mutation inventorySetQuantities($input: InventorySetQuantitiesInput!) {
		inventorySetQuantities(input: $input) {
			inventoryAdjustmentGroup {
				reason
				changes { name delta quantityAfterChange }
			}
			userErrors { field message }
		}
	}`

	var data dto.InventorySetQuantitiesData
	err := c.executeGraphQL(ctx, shopDomain, query, map[string]any{
		"input": map[string]any{
			"reason":                "correction",
			"name":                  name,
			"ignoreCompareQuantity": true,
			"quantities": []map[string]any{
				{
					"inventoryItemId": inventoryItemID,
					"locationId":      locationID,
					"quantity":        quantity,
				},
			},
		},
	}, &data)
	if err != nil {
		return err
	}
	return userErrorsToError("inventorySetQuantities", data.InventorySetQuantities.UserErrors)
}

// UpdateStock drives one variant's stock fields to absolute values.
//
// The set-quantities mutation is adjustment-flavored on the platform side,
// so a nonzero current value is first zeroed and then set to the target.
// That doubles the call volume but guarantees the stored value equals the
// caller's intent regardless of how the platform interprets set-vs-delta.
func (c *Client) UpdateStock(ctx context.Context, shopDomain, inventoryItemID, locationID string, onHand, available *int) ([]AppliedQuantity, error) {
	if onHand == nil && available == nil {
		return nil, ErrMissingQuantities
	}

	currentOnHand, err := c.GetQuantity(ctx, shopDomain, inventoryItemID, locationID, QuantityOnHand)
	if err != nil {
		return nil, err
	}
	currentAvailable, err := c.GetQuantity(ctx, shopDomain, inventoryItemID, locationID, QuantityAvailable)
	if err != nil {
		return nil, err
	}

	// Both quantities unresolvable means the item is not active at this
	// location. Activate, then pick up whatever the activation reports.
	if currentOnHand == nil && currentAvailable == nil {
		activated, err := c.activateInventory(ctx, shopDomain, inventoryItemID, locationID)
		if err != nil {
			return nil, err
		}
		if activated != nil {
			currentOnHand = activated
			currentAvailable = activated
		}
		c.log(fmt.Sprintf("shopify inventory activated before stock update item=%s location=%s", inventoryItemID, locationID))
	}

	// One more read for the freshest values, guarding against activation
	// side effects landing between the first query and now.
	if latest, err := c.GetQuantity(ctx, shopDomain, inventoryItemID, locationID, QuantityOnHand); err == nil && latest != nil {
		currentOnHand = latest
	}
	if latest, err := c.GetQuantity(ctx, shopDomain, inventoryItemID, locationID, QuantityAvailable); err == nil && latest != nil {
		currentAvailable = latest
	}

	applied := make([]AppliedQuantity, 0, 2)

	if onHand != nil {
		if currentOnHand != nil && *currentOnHand > 0 {
			if err := c.setQuantity(ctx, shopDomain, inventoryItemID, locationID, 0, QuantityOnHand); err != nil {
				return nil, err
			}
		}
		if err := c.setQuantity(ctx, shopDomain, inventoryItemID, locationID, *onHand, QuantityOnHand); err != nil {
			return nil, err
		}
		applied = append(applied, AppliedQuantity{
			Name:                QuantityOnHand,
			Delta:               *onHand - intOrZero(currentOnHand),
			QuantityAfterChange: *onHand,
		})
	}

	if available != nil {
		if currentAvailable != nil && *currentAvailable > 0 {
			if err := c.setQuantity(ctx, shopDomain, inventoryItemID, locationID, 0, QuantityAvailable); err != nil {
				return nil, err
			}
		}
		if err := c.setQuantity(ctx, shopDomain, inventoryItemID, locationID, *available, QuantityAvailable); err != nil {
			return nil, err
		}
		applied = append(applied, AppliedQuantity{
			Name:                QuantityAvailable,
			Delta:               *available - intOrZero(currentAvailable),
			QuantityAfterChange: *available,
		})
	}

	return applied, nil
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
