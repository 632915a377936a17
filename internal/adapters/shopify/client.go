package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shopify-cost-editor/internal/adapters/shopify/dto"
	"shopify-cost-editor/internal/config"
	"shopify-cost-editor/internal/logging"
)

// TokenSource resolves the Admin API access token for a shop domain.
type TokenSource interface {
	AccessToken(ctx context.Context, shopDomain string) (string, error)
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

const (
	callLimitHeader    = "X-Shopify-Shop-Api-Call-Limit"
	callLimitThreshold = 0.8
	throttleDelay      = 2 * time.Second
)

type Client struct {
	config     config.ShopifyConfig
	httpClient *http.Client
	tokens     TokenSource
	logger     logging.LoggerService

	// overridable in tests
	sleep func(ctx context.Context, delay time.Duration) error
}

func NewClient(cfg config.ShopifyConfig, httpClient *http.Client, tokens TokenSource, logger logging.LoggerService) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		config:     cfg,
		httpClient: httpClient,
		tokens:     tokens,
		logger:     logger,
		sleep:      sleepWithContext,
	}
}

// executeGraphQL posts one query/mutation to the shop's Admin API endpoint.
// A GraphQL-level errors array fails the call even on HTTP 200; a success
// envelope without a data key leaves out untouched and returns nil.
func (c *Client) executeGraphQL(ctx context.Context, shopDomain string, query string, variables map[string]any, out any) error {
	shopDomain = strings.TrimSpace(shopDomain)
	if shopDomain == "" {
		return errors.New("shopify shop domain is empty")
	}
	if c.config.APIVer == "" {
		return errors.New("shopify api version is empty")
	}

	token, err := c.tokens.AccessToken(ctx, shopDomain)
	if err != nil {
		return err
	}

	endpoint := "https://" + shopDomain + "/admin/api/" + c.config.APIVer + "/graphql.json"

	payload := graphQLRequest{Query: strings.TrimSpace(query)}
	if len(variables) > 0 {
		payload.Variables = variables
	}
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	raw, callLimit, err := c.postWithRetry(ctx, endpoint, token, bodyBytes)
	if err != nil {
		return err
	}

	var resp dto.GraphQLResponse[json.RawMessage]
	if err := json.Unmarshal(raw, &resp); err != nil {
		return fmt.Errorf("shopify graphql response decode: %w", err)
	}
	if len(resp.Errors) > 0 {
		return &APIError{
			Kind:     KindGraphQL,
			Messages: graphQLErrorMessages(resp.Errors),
		}
	}

	c.throttleOnCallLimit(ctx, callLimit)

	if out == nil {
		return nil
	}
	// No data key on a success envelope: empty result, not an error.
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return nil
	}
	return json.Unmarshal(resp.Data, out)
}

func (c *Client) postWithRetry(ctx context.Context, endpoint, token string, body []byte) ([]byte, string, error) {
	var lastErr error

	for attempt := 0; attempt <= retryMax; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, retryDelay); err != nil {
				return nil, "", err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, "", err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Shopify-Access-Token", token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = &APIError{
				Kind:     KindTransport,
				Messages: []string{err.Error()},
			}
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = &APIError{
				Kind:     KindTransport,
				Messages: []string{err.Error()},
			}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			statusErr := classifyHTTPStatus(resp.StatusCode, respBody)
			if isRetryableStatus(resp.StatusCode) {
				lastErr = statusErr
				continue
			}
			return nil, "", statusErr
		}

		return respBody, resp.Header.Get(callLimitHeader), nil
	}

	return nil, "", lastErr
}

// throttleOnCallLimit inspects the used/total budget header and sleeps
// when utilization passes the threshold, so a busy batch backs off before
// Shopify starts returning 429s.
func (c *Client) throttleOnCallLimit(ctx context.Context, callLimit string) {
	callLimit = strings.TrimSpace(callLimit)
	if callLimit == "" {
		return
	}
	parts := strings.SplitN(callLimit, "/", 2)
	if len(parts) != 2 {
		return
	}
	used, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return
	}
	total, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || total <= 0 {
		return
	}
	if used/total <= callLimitThreshold {
		return
	}
	if c.logger != nil {
		c.logger.LogWarning(fmt.Sprintf("shopify rate limit approaching used=%s", callLimit))
	}
	_ = c.sleep(ctx, throttleDelay)
}

func (c *Client) logWarning(message string) {
	if c.logger == nil || strings.TrimSpace(message) == "" {
		return
	}
	c.logger.LogWarning(message)
}

func (c *Client) log(message string) {
	if c.logger == nil || strings.TrimSpace(message) == "" {
		return
	}
	c.logger.Log(message)
}

func buildSearchQuery(field, value string) string {
	if strings.ContainsAny(value, " \"") {
		value = strings.ReplaceAll(value, `"`, `\"`)
		value = fmt.Sprintf(`"%s"`, value)
	}
	return fmt.Sprintf("%s:%s", field, value)
}
