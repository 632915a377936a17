package usecases

import (
	"context"
	"errors"
	"fmt"

	"shopify-cost-editor/internal/adapters/shopify"
	"shopify-cost-editor/internal/adapters/store"
	"shopify-cost-editor/internal/domain/model"
	"shopify-cost-editor/internal/logging"
)

// ErrNoChanges is returned for an empty batch, before any API call.
var ErrNoChanges = errors.New("no changes to update")

type UpdateChangesService interface {
	Run(ctx context.Context, batch ChangeBatch) (BatchOutcome, error)
}

// AuditSink records applied field changes. Failures are logged and
// swallowed; they never fail the batch.
type AuditSink interface {
	Record(ctx context.Context, entry store.AuditEntry) error
}

// ChangeRequest carries one variant's edits. A nil field was not edited.
// A field is dispatched only when its new value is present and either no
// old value was supplied or the value actually changed.
type ChangeRequest struct {
	InventoryItemID string
	ProductID       string
	VariantID       string
	LocationID      string
	CurrencyCode    string

	Cost    *float64
	OldCost *float64

	Price    *float64
	OldPrice *float64

	OnHand    *int
	OldOnHand *int

	// Available is display-only in this flow and never mutated.
	Available    *int
	OldAvailable *int
}

type ChangeBatch struct {
	ShopDomain   string
	ProductID    string
	LocationID   string
	CurrencyCode string
	Changes      []ChangeRequest
}

type VariantErrors struct {
	InventoryItemID string   `json:"inventoryItemId"`
	Errors          []string `json:"errors"`
}

type BatchOutcome struct {
	UpdatedCosts  int             `json:"costs"`
	UpdatedPrices int             `json:"prices"`
	UpdatedStocks int             `json:"stocks"`
	Errors        []VariantErrors `json:"errors,omitempty"`
}

func (o BatchOutcome) FullSuccess() bool {
	return len(o.Errors) == 0
}

func (o BatchOutcome) Message() string {
	parts := make([]string, 0, 3)
	if o.UpdatedCosts > 0 {
		parts = append(parts, fmt.Sprintf("%d cost(s)", o.UpdatedCosts))
	}
	if o.UpdatedPrices > 0 {
		parts = append(parts, fmt.Sprintf("%d price(s)", o.UpdatedPrices))
	}
	if o.UpdatedStocks > 0 {
		parts = append(parts, fmt.Sprintf("%d inventory level(s)", o.UpdatedStocks))
	}
	msg := "Successfully updated"
	if !o.FullSuccess() {
		msg = "Partially updated"
	}
	for i, part := range parts {
		if i == 0 {
			msg += ": " + part
		} else {
			msg += ", " + part
		}
	}
	if !o.FullSuccess() {
		msg += fmt.Sprintf(". %d variant(s) failed", len(o.Errors))
	}
	return msg
}

type ClientUpdate struct {
	variants  shopify.VariantService
	inventory shopify.InventoryService
	products  shopify.ProductService
	audit     AuditSink
	logger    logging.LoggerService
}

func NewUpdateChanges(
	variants shopify.VariantService,
	inventory shopify.InventoryService,
	products shopify.ProductService,
	audit AuditSink,
	logger logging.LoggerService,
) UpdateChangesService {
	return &ClientUpdate{
		variants:  variants,
		inventory: inventory,
		products:  products,
		audit:     audit,
		logger:    logger,
	}
}

// Run applies a batch of per-variant cost/price/stock edits. Each field
// failure is recorded against its variant and processing continues with
// the next field and the next variant; only precondition failures
// (empty batch, shop not authenticated) abort the whole batch.
func (c *ClientUpdate) Run(ctx context.Context, batch ChangeBatch) (BatchOutcome, error) {
	var outcome BatchOutcome

	if len(batch.Changes) == 0 {
		return outcome, ErrNoChanges
	}

	currency := batch.CurrencyCode
	if currency == "" {
		currency = "USD"
	}

	// Shop-level default location, resolved at most once per batch and
	// only when a stock change actually needs it.
	defaultLocation := batch.LocationID
	defaultLocationResolved := defaultLocation != ""

	for _, change := range batch.Changes {
		var variantErrors []string
		changeCurrency := change.CurrencyCode
		if changeCurrency == "" {
			changeCurrency = currency
		}
		productID := change.ProductID
		if productID == "" {
			productID = batch.ProductID
		}

		if dirtyFloat(change.OldCost, change.Cost) {
			_, err := c.variants.UpdateCost(ctx, batch.ShopDomain, change.InventoryItemID, *change.Cost, changeCurrency)
			if err != nil {
				if errors.Is(err, store.ErrShopNotAuthenticated) {
					return outcome, err
				}
				variantErrors = append(variantErrors, "Cost: "+err.Error())
			} else {
				outcome.UpdatedCosts++
				c.emitAudit(ctx, store.AuditEntry{
					ShopDomain:      batch.ShopDomain,
					FieldType:       model.AuditFieldCost,
					FieldName:       "cost",
					InventoryItemID: change.InventoryItemID,
					OldValue:        change.OldCost,
					NewValue:        *change.Cost,
					CurrencyCode:    changeCurrency,
					ProductID:       productID,
					VariantID:       change.VariantID,
				})
			}
		}

		if change.VariantID != "" && dirtyFloat(change.OldPrice, change.Price) {
			err := c.variants.UpdatePrice(ctx, batch.ShopDomain, productID, change.VariantID, shopify.FormatMoneyAmount(*change.Price))
			if err != nil {
				if errors.Is(err, store.ErrShopNotAuthenticated) {
					return outcome, err
				}
				variantErrors = append(variantErrors, "Price: "+err.Error())
			} else {
				outcome.UpdatedPrices++
				c.emitAudit(ctx, store.AuditEntry{
					ShopDomain:      batch.ShopDomain,
					FieldType:       model.AuditFieldPrice,
					FieldName:       "price",
					InventoryItemID: change.InventoryItemID,
					OldValue:        change.OldPrice,
					NewValue:        *change.Price,
					CurrencyCode:    changeCurrency,
					ProductID:       productID,
					VariantID:       change.VariantID,
				})
			}
		}

		if dirtyInt(change.OldOnHand, change.OnHand) {
			location := change.LocationID
			if location == "" {
				if !defaultLocationResolved {
					resolved, err := c.products.GetShopLocationID(ctx, batch.ShopDomain)
					if err != nil {
						if errors.Is(err, store.ErrShopNotAuthenticated) {
							return outcome, err
						}
						c.logWarning(fmt.Sprintf("default location lookup failed shop=%s: %v", batch.ShopDomain, err))
					}
					defaultLocation = resolved
					defaultLocationResolved = true
				}
				location = defaultLocation
			}

			if location == "" {
				c.logWarning(fmt.Sprintf("stock update skipped, no location resolved item=%s", change.InventoryItemID))
			} else {
				_, err := c.inventory.UpdateStock(ctx, batch.ShopDomain, change.InventoryItemID, location, change.OnHand, nil)
				if err != nil {
					if errors.Is(err, store.ErrShopNotAuthenticated) {
						return outcome, err
					}
					variantErrors = append(variantErrors, "Stock: "+err.Error())
				} else {
					outcome.UpdatedStocks++
					c.emitAudit(ctx, store.AuditEntry{
						ShopDomain:      batch.ShopDomain,
						FieldType:       model.AuditFieldStock,
						FieldName:       "stock_on_hand",
						InventoryItemID: change.InventoryItemID,
						OldValue:        intToFloat(change.OldOnHand),
						NewValue:        float64(*change.OnHand),
						CurrencyCode:    changeCurrency,
						ProductID:       productID,
						VariantID:       change.VariantID,
					})
				}
			}
		}

		if len(variantErrors) > 0 {
			outcome.Errors = append(outcome.Errors, VariantErrors{
				InventoryItemID: change.InventoryItemID,
				Errors:          variantErrors,
			})
		}
	}

	if c.logger != nil {
		c.logger.LogSuccess(fmt.Sprintf(
			"change batch applied shop=%s costs=%d prices=%d stocks=%d failed_variants=%d",
			batch.ShopDomain,
			outcome.UpdatedCosts,
			outcome.UpdatedPrices,
			outcome.UpdatedStocks,
			len(outcome.Errors),
		))
	}

	return outcome, nil
}

func (c *ClientUpdate) emitAudit(ctx context.Context, entry store.AuditEntry) {
	if c.audit == nil {
		return
	}
	if err := c.audit.Record(ctx, entry); err != nil {
		c.logWarning(fmt.Sprintf("failed to record audit change field=%s item=%s: %v", entry.FieldName, entry.InventoryItemID, err))
	}
}

func (c *ClientUpdate) logWarning(message string) {
	if c.logger == nil {
		return
	}
	c.logger.LogWarning(message)
}

func dirtyFloat(old, new *float64) bool {
	if new == nil {
		return false
	}
	return old == nil || *new != *old
}

func dirtyInt(old, new *int) bool {
	if new == nil {
		return false
	}
	return old == nil || *new != *old
}

func intToFloat(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
