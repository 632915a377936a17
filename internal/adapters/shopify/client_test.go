package shopify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopify-cost-editor/internal/config"
)

type staticTokens struct{}

func (staticTokens) AccessToken(ctx context.Context, shopDomain string) (string, error) {
	return "test-token", nil
}

type scriptedResponse struct {
	status    int
	body      string
	callLimit string
}

// scriptedServer replays canned responses in order and records every
// request body it saw.
type scriptedServer struct {
	mu        sync.Mutex
	responses []scriptedResponse
	requests  []string
	headers   []http.Header
}

func (s *scriptedServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	body, _ := io.ReadAll(r.Body)
	s.requests = append(s.requests, string(body))
	s.headers = append(s.headers, r.Header.Clone())

	resp := scriptedResponse{status: http.StatusOK, body: `{"data":{}}`}
	if len(s.responses) > 0 {
		resp = s.responses[0]
		s.responses = s.responses[1:]
	}
	if resp.callLimit != "" {
		w.Header().Set(callLimitHeader, resp.callLimit)
	}
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

func (s *scriptedServer) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *scriptedServer) requestBody(i int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[i]
}

func newTestClient(t *testing.T, responses ...scriptedResponse) (*Client, *scriptedServer, string) {
	t.Helper()

	script := &scriptedServer{responses: responses}
	server := httptest.NewTLSServer(http.HandlerFunc(script.handle))
	t.Cleanup(server.Close)

	client := NewClient(config.ShopifyConfig{APIVer: "2024-10", Timeout: 5 * time.Second}, server.Client(), staticTokens{}, nil)
	return client, script, strings.TrimPrefix(server.URL, "https://")
}

// recordSleeps replaces the client's sleep with a recorder so retry and
// throttle delays are observable without waiting.
func recordSleeps(c *Client) *[]time.Duration {
	var slept []time.Duration
	c.sleep = func(ctx context.Context, delay time.Duration) error {
		slept = append(slept, delay)
		return nil
	}
	return &slept
}

func TestExecuteGraphQLSendsTokenHeader(t *testing.T) {
	client, script, shop := newTestClient(t, scriptedResponse{
		status: http.StatusOK,
		body:   `{"data":{"shop":{"name":"demo"}}}`,
	})

	var out map[string]any
	err := client.executeGraphQL(context.Background(), shop, `query { shop { name } }`, nil, &out)
	require.NoError(t, err)

	require.Equal(t, 1, script.requestCount())
	assert.Equal(t, "test-token", script.headers[0].Get("X-Shopify-Access-Token"))
	assert.Equal(t, "demo", out["shop"].(map[string]any)["name"])
}

func TestExecuteGraphQLErrorsArrayFailsOnHTTP200(t *testing.T) {
	client, _, shop := newTestClient(t, scriptedResponse{
		status: http.StatusOK,
		body:   `{"errors":[{"message":"Field 'bogus' doesn't exist","extensions":{"code":"undefinedField"}}]}`,
	})

	err := client.executeGraphQL(context.Background(), shop, `query { bogus }`, nil, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindGraphQL, apiErr.Kind)
	assert.Contains(t, apiErr.Error(), "bogus")
	assert.Contains(t, apiErr.Error(), "undefinedField")
}

func TestExecuteGraphQLMissingDataIsEmptyResult(t *testing.T) {
	client, _, shop := newTestClient(t, scriptedResponse{
		status: http.StatusOK,
		body:   `{}`,
	})

	out := map[string]any{"untouched": true}
	err := client.executeGraphQL(context.Background(), shop, `query { shop { name } }`, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"untouched": true}, out)
}

func TestPostWithRetryRecoversFromTransientStatus(t *testing.T) {
	client, script, shop := newTestClient(t,
		scriptedResponse{status: http.StatusServiceUnavailable, body: `upstream error`},
		scriptedResponse{status: http.StatusOK, body: `{"data":{}}`},
	)
	slept := recordSleeps(client)

	err := client.executeGraphQL(context.Background(), shop, `query { shop { name } }`, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, script.requestCount())
	assert.Equal(t, []time.Duration{retryDelay}, *slept)
}

func TestPostWithRetryGivesUpAfterMaxAttempts(t *testing.T) {
	client, script, shop := newTestClient(t,
		scriptedResponse{status: http.StatusTooManyRequests, body: `throttled`},
		scriptedResponse{status: http.StatusTooManyRequests, body: `throttled`},
		scriptedResponse{status: http.StatusTooManyRequests, body: `throttled`},
	)
	recordSleeps(client)

	err := client.executeGraphQL(context.Background(), shop, `query { shop { name } }`, nil, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindRateLimited, apiErr.Kind)
	assert.Equal(t, retryMax+1, script.requestCount())
}

func TestPostWithRetryDoesNotRetryClientErrors(t *testing.T) {
	client, script, shop := newTestClient(t, scriptedResponse{
		status: http.StatusUnauthorized,
		body:   `{"errors":"Invalid API key or access token"}`,
	})
	recordSleeps(client)

	err := client.executeGraphQL(context.Background(), shop, `query { shop { name } }`, nil, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindUnauthorized, apiErr.Kind)
	assert.Equal(t, 1, script.requestCount())
}

func TestThrottleOnCallLimit(t *testing.T) {
	tests := []struct {
		name      string
		callLimit string
		want      []time.Duration
	}{
		{name: "above threshold", callLimit: "180/200", want: []time.Duration{throttleDelay}},
		{name: "below threshold", callLimit: "50/200", want: nil},
		{name: "malformed header", callLimit: "nonsense", want: nil},
		{name: "missing header", callLimit: "", want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client, _, shop := newTestClient(t, scriptedResponse{
				status:    http.StatusOK,
				body:      `{"data":{}}`,
				callLimit: tc.callLimit,
			})
			slept := recordSleeps(client)

			err := client.executeGraphQL(context.Background(), shop, `query { shop { name } }`, nil, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, *slept)
		})
	}
}

func TestClassifyHTTPStatusTruncatesBody(t *testing.T) {
	long := strings.Repeat("x", 500)
	err := classifyHTTPStatus(http.StatusBadGateway, []byte(long))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindHTTP, apiErr.Kind)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Len(t, apiErr.Messages, 1)
	assert.Len(t, apiErr.Messages[0], 200)
}

func TestClassifyHTTPStatusKinds(t *testing.T) {
	tests := []struct {
		status int
		kind   ErrorKind
	}{
		{http.StatusUnauthorized, KindUnauthorized},
		{http.StatusForbidden, KindForbidden},
		{http.StatusTooManyRequests, KindRateLimited},
		{http.StatusInternalServerError, KindHTTP},
	}
	for _, tc := range tests {
		err := classifyHTTPStatus(tc.status, nil)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, tc.kind, apiErr.Kind)
	}
}

func TestExecuteGraphQLOmitsEmptyVariables(t *testing.T) {
	client, script, shop := newTestClient(t, scriptedResponse{
		status: http.StatusOK,
		body:   `{"data":{}}`,
	})

	err := client.executeGraphQL(context.Background(), shop, `query { shop { name } }`, nil, nil)
	require.NoError(t, err)

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(script.requestBody(0)), &payload))
	_, hasVariables := payload["variables"]
	assert.False(t, hasVariables)
}
