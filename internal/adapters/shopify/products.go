package shopify

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"shopify-cost-editor/internal/adapters/shopify/dto"
	"shopify-cost-editor/internal/domain/model"
)

type ProductService interface {
	GetProducts(ctx context.Context, shopDomain string, first int, after, search string) (model.ProductPage, error)
	GetProductWithVariants(ctx context.Context, shopDomain, productID, locationID string) (model.Product, error)
	GetAllLocations(ctx context.Context, shopDomain string) ([]model.Location, error)
	GetShopLocationID(ctx context.Context, shopDomain string) (string, error)
}

const defaultPageSize = 20

func (c *Client) GetProducts(ctx context.Context, shopDomain string, first int, after, search string) (model.ProductPage, error) {
	if first <= 0 || first > 250 {
		first = defaultPageSize
	}

	query := `
	query products($first: Int!, $after: String, $query: String) {
		products(first: $first, after: $after, query: $query) {
			pageInfo { hasNextPage endCursor }
			edges {
				node {
					id
					title
					status
					totalVariants
					priceRangeV2 {
						minVariantPrice { amount currencyCode }
						maxVariantPrice { amount currencyCode }
					}
					variants(first: 250) {
						edges {
							node {
								id
								price
								inventoryItem {
									id
									unitCost { amount currencyCode }
								}
							}
						}
					}
				}
			}
		}
	}`

	variables := map[string]any{"first": first}
	if strings.TrimSpace(after) != "" {
		variables["after"] = after
	}
	if search = strings.TrimSpace(search); search != "" {
		variables["query"] = buildSearchQuery("title", search)
	}

	var data dto.ProductsQueryData
	if err := c.executeGraphQL(ctx, shopDomain, query, variables, &data); err != nil {
		return model.ProductPage{}, err
	}

	page := model.ProductPage{
		Products:    make([]model.Product, 0, len(data.Products.Edges)),
		HasNextPage: data.Products.PageInfo.HasNextPage,
		EndCursor:   data.Products.PageInfo.EndCursor,
	}
	for _, edge := range data.Products.Edges {
		page.Products = append(page.Products, mapProductNode(edge.Node, ""))
	}
	return page, nil
}

func (c *Client) GetProductWithVariants(ctx context.Context, shopDomain, productID, locationID string) (model.Product, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return model.Product{}, errors.New("shopify product id is required")
	}

	query := `
	query product($id: ID!) {
		product(id: $id) {
			id
			title
			status
			totalVariants
			variants(first: 250) {
				edges {
					node {
						id
						title
						sku
						price
						inventoryItem {
							id
							unitCost { amount currencyCode }
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
					}
				}
			}
		}
	}`

	var data dto.ProductQueryData
	if err := c.executeGraphQL(ctx, shopDomain, query, map[string]any{"id": productID}, &data); err != nil {
		return model.Product{}, err
	}
	if data.Product == nil {
		return model.Product{}, errors.New("shopify product not found")
	}
	return mapProductNode(*data.Product, locationID), nil
}

func (c *Client) GetAllLocations(ctx context.Context, shopDomain string) ([]model.Location, error) {
	query := `
	query locations {
		locations(first: 250) {
			edges {
				node { id name }
			}
		}
	}`

	var data dto.LocationsQueryData
	if err := c.executeGraphQL(ctx, shopDomain, query, nil, &data); err != nil {
		return nil, err
	}

	locations := make([]model.Location, 0, len(data.Locations.Edges))
	for _, edge := range data.Locations.Edges {
		if edge.Node.ID == "" {
			continue
		}
		name := edge.Node.Name
		if name == "" {
			name = "Unknown Location"
		}
		locations = append(locations, model.Location{ID: edge.Node.ID, Name: name})
	}
	return locations, nil
}

// GetShopLocationID returns the shop's first location as the default for
// stock updates when the caller does not name one.
func (c *Client) GetShopLocationID(ctx context.Context, shopDomain string) (string, error) {
	locations, err := c.GetAllLocations(ctx, shopDomain)
	if err != nil {
		return "", err
	}
	if len(locations) == 0 {
		return "", nil
	}
	return locations[0].ID, nil
}

func mapProductNode(node dto.ProductNode, locationID string) model.Product {
	product := model.Product{
		ID:            node.ID,
		Title:         node.Title,
		Status:        node.Status,
		TotalVariants: node.TotalVariants,
	}
	if node.PriceRangeV2 != nil {
		product.MinPrice = node.PriceRangeV2.MinVariantPrice.Amount
		product.MaxPrice = node.PriceRangeV2.MaxVariantPrice.Amount
	}

	var costs []float64
	costCurrency := ""
	for _, edge := range node.Variants.Edges {
		variant := mapVariantNode(edge.Node, locationID)
		product.Variants = append(product.Variants, variant)

		if variant.Cost != nil {
			if amount, err := strconv.ParseFloat(*variant.Cost, 64); err == nil && amount > 0 {
				costs = append(costs, amount)
				if costCurrency == "" {
					costCurrency = variant.CostCurrency
				}
			}
		}
	}
	if product.TotalVariants == 0 {
		product.TotalVariants = len(product.Variants)
	}

	if len(costs) > 0 {
		minCost, maxCost := costs[0], costs[0]
		for _, cost := range costs[1:] {
			if cost < minCost {
				minCost = cost
			}
			if cost > maxCost {
				maxCost = cost
			}
		}
		if costCurrency == "" {
			costCurrency = "USD"
		}
		product.CostRange = &model.CostRange{
			MinCost:      minCost,
			MaxCost:      maxCost,
			CurrencyCode: costCurrency,
		}
	}
	return product
}

func mapVariantNode(node dto.VariantNode, locationID string) model.Variant {
	variant := model.Variant{
		ID:    node.ID,
		Title: node.Title,
		SKU:   node.SKU,
		Price: node.Price,
	}
	if node.InventoryItem == nil {
		return variant
	}
	variant.InventoryItemID = node.InventoryItem.ID
	if node.InventoryItem.UnitCost != nil && node.InventoryItem.UnitCost.Amount != "" {
		amount := node.InventoryItem.UnitCost.Amount
		variant.Cost = &amount
		variant.CostCurrency = node.InventoryItem.UnitCost.CurrencyCode
	}
	if node.InventoryItem.InventoryLevels == nil {
		return variant
	}
	for _, edge := range node.InventoryItem.InventoryLevels.Edges {
		level := edge.Node
		if locationID != "" && level.Location.ID != locationID {
			continue
		}
		for _, qty := range level.Quantities {
			quantity := qty.Quantity
			switch qty.Name {
			case QuantityOnHand:
				variant.OnHand = &quantity
			case QuantityAvailable:
				variant.Available = &quantity
			}
		}
		break
	}
	return variant
}
