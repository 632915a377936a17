package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"shopify-cost-editor/internal/auth"
	"shopify-cost-editor/internal/logging"
)

const (
	webhookHMACHeader = "X-Shopify-Hmac-Sha256"
	webhookShopHeader = "X-Shopify-Shop-Domain"
)

// ShopUninstaller revokes a shop's stored credentials.
type ShopUninstaller interface {
	MarkUninstalled(ctx context.Context, shopDomain string) error
}

type WebhooksHandler struct {
	secret string
	shops  ShopUninstaller
	logger logging.LoggerService
}

func NewWebhooksHandler(secret string, shops ShopUninstaller, logger logging.LoggerService) *WebhooksHandler {
	return &WebhooksHandler{secret: secret, shops: shops, logger: logger}
}

// AppUninstalled clears the shop's stored token when Shopify reports the
// app was removed. Webhook deliveries must always be answered 200 once
// verified, or Shopify keeps retrying.
func (h *WebhooksHandler) AppUninstalled(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	if !auth.VerifyWebhookHMAC(body, h.secret, c.Request().Header.Get(webhookHMACHeader)) {
		return c.NoContent(http.StatusUnauthorized)
	}

	shopDomain := c.Request().Header.Get(webhookShopHeader)
	if !auth.ValidShopDomain(shopDomain) {
		return c.NoContent(http.StatusBadRequest)
	}

	if err := h.shops.MarkUninstalled(c.Request().Context(), shopDomain); err != nil {
		h.logger.LogError("failed to mark shop uninstalled: "+shopDomain, err)
	} else {
		h.logger.Log("shop uninstalled: " + shopDomain)
	}
	return c.NoContent(http.StatusOK)
}
