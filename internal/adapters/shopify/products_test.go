package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopify-cost-editor/internal/adapters/shopify/dto"
)

func parseProductNode(t *testing.T, raw string) dto.ProductNode {
	t.Helper()
	var node dto.ProductNode
	require.NoError(t, json.Unmarshal([]byte(raw), &node))
	return node
}

func TestMapProductNodeCostRange(t *testing.T) {
	node := parseProductNode(t, `{
		"id": "gid://shopify/Product/1",
		"title": "Widget",
		"status": "ACTIVE",
		"totalVariants": 3,
		"priceRangeV2": {
			"minVariantPrice": {"amount": "10.00", "currencyCode": "EUR"},
			"maxVariantPrice": {"amount": "30.00", "currencyCode": "EUR"}
		},
		"variants": {"edges": [
			{"node": {"id": "v1", "price": "10.00", "inventoryItem": {"id": "i1", "unitCost": {"amount": "4.50", "currencyCode": "EUR"}}}},
			{"node": {"id": "v2", "price": "20.00", "inventoryItem": {"id": "i2", "unitCost": {"amount": "2.25", "currencyCode": "EUR"}}}},
			{"node": {"id": "v3", "price": "30.00", "inventoryItem": {"id": "i3"}}}
		]}
	}`)

	product := mapProductNode(node, "")

	assert.Equal(t, "Widget", product.Title)
	assert.Equal(t, 3, product.TotalVariants)
	assert.Equal(t, "10.00", product.MinPrice)
	assert.Equal(t, "30.00", product.MaxPrice)
	require.NotNil(t, product.CostRange)
	assert.Equal(t, 2.25, product.CostRange.MinCost)
	assert.Equal(t, 4.50, product.CostRange.MaxCost)
	assert.Equal(t, "EUR", product.CostRange.CurrencyCode)
}

func TestMapProductNodeNoCosts(t *testing.T) {
	node := parseProductNode(t, `{
		"id": "gid://shopify/Product/1",
		"title": "Widget",
		"variants": {"edges": [
			{"node": {"id": "v1", "price": "10.00", "inventoryItem": {"id": "i1"}}}
		]}
	}`)

	product := mapProductNode(node, "")

	assert.Nil(t, product.CostRange)
	assert.Equal(t, 1, product.TotalVariants)
}

func TestMapVariantNodeFiltersLocation(t *testing.T) {
	node := parseProductNode(t, `{
		"id": "gid://shopify/Product/1",
		"variants": {"edges": [{"node": {
			"id": "v1",
			"inventoryItem": {
				"id": "i1",
				"inventoryLevels": {"edges": [
					{"node": {"location": {"id": "locA"}, "quantities": [{"name": "on_hand", "quantity": 5}, {"name": "available", "quantity": 2}]}},
					{"node": {"location": {"id": "locB"}, "quantities": [{"name": "on_hand", "quantity": 99}]}}
				]}
			}
		}}]}
	}`)

	product := mapProductNode(node, "locB")
	require.Len(t, product.Variants, 1)

	variant := product.Variants[0]
	require.NotNil(t, variant.OnHand)
	assert.Equal(t, 99, *variant.OnHand)
	assert.Nil(t, variant.Available)
}

func TestMapVariantNodeFirstLevelWhenNoLocationGiven(t *testing.T) {
	node := parseProductNode(t, `{
		"id": "gid://shopify/Product/1",
		"variants": {"edges": [{"node": {
			"id": "v1",
			"inventoryItem": {
				"id": "i1",
				"inventoryLevels": {"edges": [
					{"node": {"location": {"id": "locA"}, "quantities": [{"name": "on_hand", "quantity": 5}]}},
					{"node": {"location": {"id": "locB"}, "quantities": [{"name": "on_hand", "quantity": 99}]}}
				]}
			}
		}}]}
	}`)

	product := mapProductNode(node, "")
	require.NotNil(t, product.Variants[0].OnHand)
	assert.Equal(t, 5, *product.Variants[0].OnHand)
}

func TestGetShopLocationIDPicksFirst(t *testing.T) {
	client, _, shop := newTestClient(t, scriptedResponse{
		status: http.StatusOK,
		body:   `{"data":{"locations":{"edges":[{"node":{"id":"gid://shopify/Location/1","name":"Main"}},{"node":{"id":"gid://shopify/Location/2","name":"Overflow"}}]}}}`,
	})

	got, err := client.GetShopLocationID(context.Background(), shop)
	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/Location/1", got)
}

func TestGetShopLocationIDNoLocations(t *testing.T) {
	client, _, shop := newTestClient(t, scriptedResponse{
		status: http.StatusOK,
		body:   `{"data":{"locations":{"edges":[]}}}`,
	})

	got, err := client.GetShopLocationID(context.Background(), shop)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestGetProductsMapsPageInfo(t *testing.T) {
	client, script, shop := newTestClient(t, scriptedResponse{
		status: http.StatusOK,
		body:   `{"data":{"products":{"pageInfo":{"hasNextPage":true,"endCursor":"abc"},"edges":[{"node":{"id":"gid://shopify/Product/1","title":"Widget","variants":{"edges":[]}}}]}}}`,
	})

	page, err := client.GetProducts(context.Background(), shop, 20, "cursor-1", "")
	require.NoError(t, err)

	assert.True(t, page.HasNextPage)
	assert.Equal(t, "abc", page.EndCursor)
	require.Len(t, page.Products, 1)
	assert.Contains(t, script.requestBody(0), `"after":"cursor-1"`)
}

func TestGetProductsBuildsSearchQuery(t *testing.T) {
	client, script, shop := newTestClient(t, scriptedResponse{
		status: http.StatusOK,
		body:   `{"data":{"products":{"pageInfo":{},"edges":[]}}}`,
	})

	_, err := client.GetProducts(context.Background(), shop, 20, "", "blue widget")
	require.NoError(t, err)
	assert.Contains(t, script.requestBody(0), `title:\"blue widget\"`)
}

func TestGetProductWithVariantsNotFound(t *testing.T) {
	client, _, shop := newTestClient(t, scriptedResponse{
		status: http.StatusOK,
		body:   `{"data":{"product":null}}`,
	})

	_, err := client.GetProductWithVariants(context.Background(), shop, "gid://shopify/Product/404", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
