package shopify

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCostSendsFixedDecimalString(t *testing.T) {
	client, script, shop := newTestClient(t, scriptedResponse{
		status: http.StatusOK,
		body:   `{"data":{"inventoryItemUpdate":{"inventoryItem":{"id":"gid://shopify/InventoryItem/111","unitCost":{"amount":"10.50","currencyCode":"EUR"},"tracked":true},"userErrors":[]}}}`,
	})

	update, err := client.UpdateCost(context.Background(), shop, testItemID, 10.5, "USD")
	require.NoError(t, err)

	assert.Contains(t, script.requestBody(0), `"cost":"10.50"`)
	assert.Equal(t, "10.50", update.Amount)
	assert.Equal(t, "EUR", update.CurrencyCode)
}

func TestUpdateCostUserErrors(t *testing.T) {
	client, _, shop := newTestClient(t, scriptedResponse{
		status: http.StatusOK,
		body:   `{"data":{"inventoryItemUpdate":{"inventoryItem":null,"userErrors":[{"field":["cost"],"message":"Cost must be positive"}]}}}`,
	})

	_, err := client.UpdateCost(context.Background(), shop, testItemID, -1, "USD")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindUserError, apiErr.Kind)
	assert.Contains(t, apiErr.Error(), "Cost must be positive")
}

func TestUpdateCostMissingItemFails(t *testing.T) {
	client, _, shop := newTestClient(t, scriptedResponse{
		status: http.StatusOK,
		body:   `{"data":{"inventoryItemUpdate":{"inventoryItem":null,"userErrors":[]}}}`,
	})

	_, err := client.UpdateCost(context.Background(), shop, testItemID, 5, "USD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no item")
}

func TestUpdateCostRequiresItemID(t *testing.T) {
	client, script, shop := newTestClient(t)

	_, err := client.UpdateCost(context.Background(), shop, "  ", 5, "USD")
	require.Error(t, err)
	assert.Equal(t, 0, script.requestCount())
}

func TestUpdatePriceSingleVariantPayload(t *testing.T) {
	client, script, shop := newTestClient(t, scriptedResponse{
		status: http.StatusOK,
		body:   `{"data":{"productVariantsBulkUpdate":{"productVariants":[{"id":"gid://shopify/ProductVariant/333","price":"25.00"}],"userErrors":[]}}}`,
	})

	err := client.UpdatePrice(context.Background(), shop, "gid://shopify/Product/1", "gid://shopify/ProductVariant/333", "25.00")
	require.NoError(t, err)

	body := script.requestBody(0)
	assert.Contains(t, body, `"price":"25.00"`)
	assert.Contains(t, body, `"id":"gid://shopify/ProductVariant/333"`)
}

func TestUpdatePriceEmptyResultFails(t *testing.T) {
	client, _, shop := newTestClient(t, scriptedResponse{
		status: http.StatusOK,
		body:   `{"data":{"productVariantsBulkUpdate":{"productVariants":[],"userErrors":[]}}}`,
	})

	err := client.UpdatePrice(context.Background(), shop, "gid://shopify/Product/1", "gid://shopify/ProductVariant/333", "25.00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no variant")
}

func TestFormatMoneyAmount(t *testing.T) {
	assert.Equal(t, "10.00", FormatMoneyAmount(10))
	assert.Equal(t, "10.50", FormatMoneyAmount(10.5))
	assert.Equal(t, "0.99", FormatMoneyAmount(0.99))
	assert.Equal(t, "1234.57", FormatMoneyAmount(1234.567))
}
