package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"shopify-cost-editor/internal/auth"
	"shopify-cost-editor/internal/logging"
)

type AuthHandler struct {
	oauth    *auth.OAuthService
	sessions *auth.SessionManager
	logger   logging.LoggerService
}

func NewAuthHandler(oauth *auth.OAuthService, sessions *auth.SessionManager, logger logging.LoggerService) *AuthHandler {
	return &AuthHandler{oauth: oauth, sessions: sessions, logger: logger}
}

// Install starts the OAuth flow for the shop passed in the query string.
func (h *AuthHandler) Install(c echo.Context) error {
	installURL, err := h.oauth.InstallURL(c.Request().Context(), c.QueryParam("shop"))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidShopDomain) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		h.logger.LogError("failed to start install flow", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to start install flow"})
	}
	return c.Redirect(http.StatusFound, installURL)
}

// Callback completes the OAuth flow and issues the session cookie.
func (h *AuthHandler) Callback(c echo.Context) error {
	shop, err := h.oauth.HandleCallback(c.Request().Context(), c.QueryParams())
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidShopDomain),
			errors.Is(err, auth.ErrInvalidHMAC),
			errors.Is(err, auth.ErrInvalidState):
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			h.logger.LogError("failed to complete install flow", err)
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to complete install flow"})
		}
	}

	token, err := h.sessions.Issue(shop.ShopDomain)
	if err != nil {
		h.logger.LogError("failed to issue session token", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to issue session token"})
	}

	c.SetCookie(h.sessions.Cookie(token))
	return c.JSON(http.StatusOK, map[string]string{
		"shop":  shop.ShopDomain,
		"token": token,
	})
}
