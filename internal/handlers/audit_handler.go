package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"shopify-cost-editor/internal/adapters/store"
	"shopify-cost-editor/internal/auth"
)

type AuditHandler struct {
	audits *store.AuditStore
}

func NewAuditHandler(audits *store.AuditStore) *AuditHandler {
	return &AuditHandler{audits: audits}
}

// List returns the shop's change history, newest first.
func (h *AuditHandler) List(c echo.Context) error {
	filter := store.AuditFilter{
		ShopDomain: auth.ShopDomain(c),
		FieldType:  c.QueryParam("fieldType"),
		FieldName:  c.QueryParam("fieldName"),
		ProductID:  shopifyGID("Product", c.QueryParam("productId")),
		VariantID:  shopifyGID("ProductVariant", c.QueryParam("variantId")),
	}
	if raw := c.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			filter.Limit = parsed
		}
	}
	if raw := c.QueryParam("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			filter.Offset = parsed
		}
	}

	logs, err := h.audits.List(c.Request().Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}
