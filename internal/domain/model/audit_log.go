package model

import "time"

type AuditFieldType string

const (
	AuditFieldCost  AuditFieldType = "cost"
	AuditFieldPrice AuditFieldType = "price"
	AuditFieldStock AuditFieldType = "stock"
)

// AuditLog is one successfully applied field change. Rows are append-only:
// they are written right after a Shopify mutation succeeds and never updated.
type AuditLog struct {
	ID              uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ShopID          uint           `gorm:"not null;index" json:"shop_id"`
	ProductID       string         `gorm:"size:255;index" json:"product_id,omitempty"`
	VariantID       string         `gorm:"size:255;index" json:"variant_id,omitempty"`
	InventoryItemID string         `gorm:"size:255;not null;index" json:"inventory_item_id"`
	FieldType       AuditFieldType `gorm:"type:varchar(20);not null;index" json:"field_type"`
	FieldName       string         `gorm:"size:50;not null;index" json:"field_name"`
	OldValue        *float64       `gorm:"type:decimal(12,2)" json:"old_value"`
	NewValue        float64        `gorm:"type:decimal(12,2);not null" json:"new_value"`
	CurrencyCode    string         `gorm:"size:3" json:"currency_code"`
	CreatedAt       time.Time      `gorm:"not null;index" json:"created_at"`
}
