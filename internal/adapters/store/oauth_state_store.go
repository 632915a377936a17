package store

import (
	"context"
	"errors"
	"time"

	"shopify-cost-editor/internal/domain/model"

	"gorm.io/gorm"
)

var ErrStateNotFound = errors.New("oauth state not found or expired")

type OAuthStateStore struct {
	db *gorm.DB
}

func NewOAuthStateStore(db *gorm.DB) *OAuthStateStore {
	return &OAuthStateStore{db: db}
}

func (s *OAuthStateStore) Create(ctx context.Context, state, shopDomain string, ttl time.Duration) error {
	row := model.OAuthState{
		State:      state,
		ShopDomain: shopDomain,
		ExpiresAt:  time.Now().Add(ttl),
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

// Consume looks up a pending state that has not expired and deletes it,
// so each state authorizes exactly one callback.
func (s *OAuthStateStore) Consume(ctx context.Context, state string) (model.OAuthState, error) {
	var row model.OAuthState
	err := s.db.WithContext(ctx).
		Where("state = ? AND expires_at > ?", state, time.Now()).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.OAuthState{}, ErrStateNotFound
	}
	if err != nil {
		return model.OAuthState{}, err
	}
	if err := s.db.WithContext(ctx).Delete(&model.OAuthState{}, row.ID).Error; err != nil {
		return model.OAuthState{}, err
	}
	return row, nil
}
