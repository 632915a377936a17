package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"shopify-cost-editor/internal/adapters/shopify"
	"shopify-cost-editor/internal/auth"
)

type ProductsHandler struct {
	products shopify.ProductService
}

func NewProductsHandler(products shopify.ProductService) *ProductsHandler {
	return &ProductsHandler{products: products}
}

// List returns a page of products for the authenticated shop. Supports
// cursor pagination via first/after query parameters.
func (h *ProductsHandler) List(c echo.Context) error {
	first := 20
	if raw := c.QueryParam("first"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 250 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "first must be between 1 and 250"})
		}
		first = parsed
	}

	page, err := h.products.GetProducts(c.Request().Context(), auth.ShopDomain(c), first, c.QueryParam("after"), c.QueryParam("search"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Get returns one product with its variants, including per-location
// inventory quantities when locationId is supplied.
func (h *ProductsHandler) Get(c echo.Context) error {
	productID := c.Param("id")
	if productID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "product id is required"})
	}

	locationID := c.QueryParam("locationId")
	if locationID != "" {
		locationID = shopifyGID("Location", locationID)
	}
	product, err := h.products.GetProductWithVariants(c.Request().Context(), auth.ShopDomain(c), shopifyGID("Product", productID), locationID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Locations lists the shop's locations for the location picker.
func (h *ProductsHandler) Locations(c echo.Context) error {
	locations, err := h.products.GetAllLocations(c.Request().Context(), auth.ShopDomain(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, locations)
}
