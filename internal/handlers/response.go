package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"shopify-cost-editor/internal/adapters/shopify"
	"shopify-cost-editor/internal/adapters/store"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError translates service errors into HTTP responses. Shop
// credential problems always surface as 401 so the frontend can restart
// the install flow.
func writeError(c echo.Context, err error) error {
	if errors.Is(err, store.ErrShopNotAuthenticated) {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "shop is not authenticated"})
	}

	var apiErr *shopify.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case shopify.KindUnauthorized:
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: apiErr.Error()})
		case shopify.KindForbidden:
			return c.JSON(http.StatusForbidden, ErrorResponse{Error: apiErr.Error()})
		case shopify.KindRateLimited:
			return c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: apiErr.Error()})
		case shopify.KindUserError, shopify.KindGraphQL:
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: apiErr.Error()})
		}
	}

	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}
