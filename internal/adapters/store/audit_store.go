package store

import (
	"context"

	"shopify-cost-editor/internal/domain/model"

	"gorm.io/gorm"
)

type AuditStore struct {
	db    *gorm.DB
	shops *ShopStore
}

func NewAuditStore(db *gorm.DB, shops *ShopStore) *AuditStore {
	return &AuditStore{db: db, shops: shops}
}

// AuditEntry is one applied field change to record. ShopDomain is
// resolved to the shop row at write time.
type AuditEntry struct {
	ShopDomain      string
	FieldType       model.AuditFieldType
	FieldName       string
	InventoryItemID string
	OldValue        *float64
	NewValue        float64
	CurrencyCode    string
	ProductID       string
	VariantID       string
}

// Record appends one audit row. The caller treats failures as non-fatal:
// the business mutation already succeeded and must not be rolled back by
// a logging failure.
func (s *AuditStore) Record(ctx context.Context, entry AuditEntry) error {
	shop, err := s.shops.FindByDomain(ctx, entry.ShopDomain)
	if err != nil {
		return err
	}

	row := model.AuditLog{
		ShopID:          shop.ID,
		ProductID:       entry.ProductID,
		VariantID:       entry.VariantID,
		InventoryItemID: entry.InventoryItemID,
		FieldType:       entry.FieldType,
		FieldName:       entry.FieldName,
		OldValue:        entry.OldValue,
		NewValue:        entry.NewValue,
		CurrencyCode:    entry.CurrencyCode,
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

type AuditFilter struct {
	ShopDomain string
	FieldType  string
	FieldName  string
	ProductID  string
	VariantID  string
	Limit      int
	Offset     int
}

// List returns audit rows newest first, scoped to one shop.
func (s *AuditStore) List(ctx context.Context, filter AuditFilter) ([]model.AuditLog, error) {
	shop, err := s.shops.FindByDomain(ctx, filter.ShopDomain)
	if err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).Model(&model.AuditLog{}).Where("shop_id = ?", shop.ID)

	if filter.FieldType != "" {
		q = q.Where("field_type = ?", filter.FieldType)
	}
	if filter.FieldName != "" {
		q = q.Where("field_name = ?", filter.FieldName)
	}
	if filter.ProductID != "" {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.VariantID != "" {
		q = q.Where("variant_id = ?", filter.VariantID)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	var logs []model.AuditLog
	err = q.Order("id DESC").Limit(limit).Offset(offset).Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
