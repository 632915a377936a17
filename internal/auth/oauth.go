package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"shopify-cost-editor/internal/adapters/store"
	"shopify-cost-editor/internal/config"
	"shopify-cost-editor/internal/domain/model"
	"shopify-cost-editor/internal/logging"
)

const stateTTL = 10 * time.Minute

var (
	ErrInvalidShopDomain = errors.New("shopify shop domain is invalid")
	ErrInvalidHMAC       = errors.New("shopify hmac verification failed")
	ErrInvalidState      = errors.New("shopify oauth state is invalid or expired")
)

type OAuthService struct {
	config     config.ShopifyConfig
	httpClient *http.Client
	shops      *store.ShopStore
	states     *store.OAuthStateStore
	logger     logging.LoggerService
}

func NewOAuthService(
	cfg config.ShopifyConfig,
	shops *store.ShopStore,
	states *store.OAuthStateStore,
	logger logging.LoggerService,
) *OAuthService {
	return &OAuthService{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		shops:      shops,
		states:     states,
		logger:     logger,
	}
}

// InstallURL creates a single-use state record and returns the Shopify
// authorize URL the merchant should be redirected to.
func (s *OAuthService) InstallURL(ctx context.Context, shopDomain string) (string, error) {
	shopDomain = strings.TrimSpace(shopDomain)
	if !ValidShopDomain(shopDomain) {
		return "", ErrInvalidShopDomain
	}

	state := uuid.NewString()
	if err := s.states.Create(ctx, state, shopDomain, stateTTL); err != nil {
		return "", fmt.Errorf("failed to persist oauth state: %w", err)
	}

	query := url.Values{}
	query.Set("client_id", s.config.ApiKey)
	query.Set("scope", s.config.Scopes)
	query.Set("redirect_uri", s.config.RedirectUri)
	query.Set("state", state)

	return fmt.Sprintf("https://%s/admin/oauth/authorize?%s", shopDomain, query.Encode()), nil
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
}

// HandleCallback verifies the signed callback, consumes the state, exchanges
// the temporary code for a permanent access token and stores it.
func (s *OAuthService) HandleCallback(ctx context.Context, params url.Values) (model.Shop, error) {
	shopDomain := strings.TrimSpace(params.Get("shop"))
	if !ValidShopDomain(shopDomain) {
		return model.Shop{}, ErrInvalidShopDomain
	}
	if !VerifyHMAC(params, s.config.ApiSecret) {
		return model.Shop{}, ErrInvalidHMAC
	}

	pending, err := s.states.Consume(ctx, params.Get("state"))
	if err != nil {
		if errors.Is(err, store.ErrStateNotFound) {
			return model.Shop{}, ErrInvalidState
		}
		return model.Shop{}, fmt.Errorf("failed to consume oauth state: %w", err)
	}
	if pending.ShopDomain != shopDomain {
		return model.Shop{}, ErrInvalidState
	}

	token, err := s.exchangeCode(ctx, shopDomain, params.Get("code"))
	if err != nil {
		return model.Shop{}, err
	}

	shop, err := s.shops.Upsert(ctx, shopDomain, token.AccessToken, token.Scope)
	if err != nil {
		return model.Shop{}, fmt.Errorf("failed to save shop credentials: %w", err)
	}

	s.log(fmt.Sprintf("shop installed: %s", shopDomain))
	return shop, nil
}

func (s *OAuthService) exchangeCode(ctx context.Context, shopDomain, code string) (accessTokenResponse, error) {
	if code == "" {
		return accessTokenResponse{}, errors.New("shopify oauth code is missing")
	}

	payload, err := json.Marshal(map[string]string{
		"client_id":     s.config.ApiKey,
		"client_secret": s.config.ApiSecret,
		"code":          code,
	})
	if err != nil {
		return accessTokenResponse{}, fmt.Errorf("failed to marshal token request: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s/admin/oauth/access_token", shopDomain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return accessTokenResponse{}, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return accessTokenResponse{}, fmt.Errorf("shopify token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return accessTokenResponse{}, fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return accessTokenResponse{}, fmt.Errorf("shopify token exchange returned status %d", resp.StatusCode)
	}

	var token accessTokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return accessTokenResponse{}, fmt.Errorf("failed to decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return accessTokenResponse{}, errors.New("shopify token exchange returned an empty token")
	}

	return token, nil
}

func (s *OAuthService) log(message string) {
	if s.logger != nil {
		s.logger.Log(message)
	}
}
