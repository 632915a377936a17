package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"shopify-cost-editor/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrShopNotAuthenticated is returned when a shop has no stored access
// token, either because it never installed or because it uninstalled.
var ErrShopNotAuthenticated = errors.New("shop not found or not authenticated")

type ShopStore struct {
	db *gorm.DB
}

func NewShopStore(db *gorm.DB) *ShopStore {
	return &ShopStore{db: db}
}

func (s *ShopStore) FindByDomain(ctx context.Context, shopDomain string) (model.Shop, error) {
	var shop model.Shop
	err := s.db.WithContext(ctx).Where("shop_domain = ?", strings.TrimSpace(shopDomain)).First(&shop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Shop{}, ErrShopNotAuthenticated
	}
	if err != nil {
		return model.Shop{}, err
	}
	return shop, nil
}

// AccessToken satisfies shopify.TokenSource.
func (s *ShopStore) AccessToken(ctx context.Context, shopDomain string) (string, error) {
	shop, err := s.FindByDomain(ctx, shopDomain)
	if err != nil {
		return "", err
	}
	if shop.AccessToken == "" || shop.UninstalledAt != nil {
		return "", ErrShopNotAuthenticated
	}
	return shop.AccessToken, nil
}

// Upsert stores the shop's credentials after a completed OAuth handshake.
func (s *ShopStore) Upsert(ctx context.Context, shopDomain, accessToken, scope string) (model.Shop, error) {
	now := time.Now()
	shop := model.Shop{
		ShopDomain:  strings.TrimSpace(shopDomain),
		AccessToken: accessToken,
		Scope:       scope,
		InstalledAt: &now,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shop_domain"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"access_token", "scope", "installed_at", "uninstalled_at", "updated_at",
		}),
	}).Create(&shop).Error
	if err != nil {
		return model.Shop{}, err
	}
	return s.FindByDomain(ctx, shopDomain)
}

// MarkUninstalled clears the installation without deleting the audit
// history tied to the shop row.
func (s *ShopStore) MarkUninstalled(ctx context.Context, shopDomain string) error {
	now := time.Now()
	return s.db.WithContext(ctx).
		Model(&model.Shop{}).
		Where("shop_domain = ?", strings.TrimSpace(shopDomain)).
		Updates(map[string]any{
			"access_token":   "",
			"uninstalled_at": &now,
		}).Error
}
