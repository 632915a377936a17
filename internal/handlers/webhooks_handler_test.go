package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUninstaller struct {
	domains []string
	err     error
}

func (s *stubUninstaller) MarkUninstalled(ctx context.Context, shopDomain string) error {
	s.domains = append(s.domains, shopDomain)
	return s.err
}

func webhookDigest(body, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func postUninstalled(t *testing.T, shops *stubUninstaller, body, digest, shopDomain string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/app/uninstalled", strings.NewReader(body))
	if digest != "" {
		req.Header.Set(webhookHMACHeader, digest)
	}
	if shopDomain != "" {
		req.Header.Set(webhookShopHeader, shopDomain)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewWebhooksHandler("secret", shops, nopLogger{})
	require.NoError(t, handler.AppUninstalled(c))
	return rec
}

func TestAppUninstalledMarksShop(t *testing.T) {
	shops := &stubUninstaller{}
	body := `{"id":123}`

	rec := postUninstalled(t, shops, body, webhookDigest(body, "secret"), "demo.myshopify.com")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"demo.myshopify.com"}, shops.domains)
}

func TestAppUninstalledRejectsBadDigest(t *testing.T) {
	shops := &stubUninstaller{}

	rec := postUninstalled(t, shops, `{"id":123}`, webhookDigest("other body", "secret"), "demo.myshopify.com")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, shops.domains)
}

func TestAppUninstalledRejectsBadShopDomain(t *testing.T) {
	shops := &stubUninstaller{}
	body := `{"id":123}`

	rec := postUninstalled(t, shops, body, webhookDigest(body, "secret"), "not-a-shop")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, shops.domains)
}
