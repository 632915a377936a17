package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"shopify-cost-editor/internal/adapters/store"
	"shopify-cost-editor/internal/app/usecases"
	"shopify-cost-editor/internal/auth"
	"shopify-cost-editor/internal/logging"
)

type ChangesHandler struct {
	updates usecases.UpdateChangesService
	logger  logging.LoggerService
}

func NewChangesHandler(updates usecases.UpdateChangesService, logger logging.LoggerService) *ChangesHandler {
	return &ChangesHandler{updates: updates, logger: logger}
}

type changeItemRequest struct {
	InventoryItemID string   `json:"inventoryItemId"`
	ProductID       string   `json:"productId"`
	VariantID       string   `json:"variantId"`
	LocationID      string   `json:"locationId"`
	CurrencyCode    string   `json:"currencyCode"`
	Cost            *float64 `json:"cost"`
	OldCost         *float64 `json:"oldCost"`
	Price           *float64 `json:"price"`
	OldPrice        *float64 `json:"oldPrice"`
	OnHand          *int     `json:"onHand"`
	OldOnHand       *int     `json:"oldOnHand"`
	Available       *int     `json:"available"`
	OldAvailable    *int     `json:"oldAvailable"`
}

type updateChangesRequest struct {
	ProductID    string              `json:"productId"`
	LocationID   string              `json:"locationId"`
	CurrencyCode string              `json:"currencyCode"`
	Changes      []changeItemRequest `json:"changes"`
}

type updateChangesResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Result  usecases.BatchOutcome `json:"result"`
}

// Update applies a batch of cost, price and stock edits. Full success
// returns 200, partial failure 422, and a batch where nothing succeeded
// 500.
func (h *ChangesHandler) Update(c echo.Context) error {
	var req updateChangesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	batch := usecases.ChangeBatch{
		ShopDomain:   auth.ShopDomain(c),
		ProductID:    shopifyGID("Product", req.ProductID),
		LocationID:   locationGID(req.LocationID),
		CurrencyCode: req.CurrencyCode,
	}
	for _, item := range req.Changes {
		batch.Changes = append(batch.Changes, usecases.ChangeRequest{
			InventoryItemID: shopifyGID("InventoryItem", item.InventoryItemID),
			ProductID:       shopifyGID("Product", item.ProductID),
			VariantID:       shopifyGID("ProductVariant", item.VariantID),
			LocationID:      locationGID(item.LocationID),
			CurrencyCode:    item.CurrencyCode,
			Cost:            item.Cost,
			OldCost:         item.OldCost,
			Price:           item.Price,
			OldPrice:        item.OldPrice,
			OnHand:          item.OnHand,
			OldOnHand:       item.OldOnHand,
			Available:       item.Available,
			OldAvailable:    item.OldAvailable,
		})
	}

	outcome, err := h.updates.Run(c.Request().Context(), batch)
	if err != nil {
		if errors.Is(err, usecases.ErrNoChanges) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no changes to update"})
		}
		if errors.Is(err, store.ErrShopNotAuthenticated) {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "shop is not authenticated"})
		}
		h.logger.LogError("change batch failed", err)
		return writeError(c, err)
	}

	status := http.StatusOK
	updated := outcome.UpdatedCosts + outcome.UpdatedPrices + outcome.UpdatedStocks
	switch {
	case outcome.FullSuccess():
	case updated > 0:
		status = http.StatusUnprocessableEntity
	default:
		status = http.StatusInternalServerError
	}

	return c.JSON(status, updateChangesResponse{
		Success: outcome.FullSuccess(),
		Message: outcome.Message(),
		Result:  outcome,
	})
}

func locationGID(id string) string {
	if id == "" {
		return ""
	}
	return shopifyGID("Location", id)
}
