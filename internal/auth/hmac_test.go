package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signParams(params url.Values, secret string) string {
	clone := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			clone.Add(k, v)
		}
	}
	clone.Del("hmac")

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(clone.Encode()))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyHMAC(t *testing.T) {
	const secret = "shpss_test_secret"

	params := url.Values{}
	params.Set("shop", "demo.myshopify.com")
	params.Set("code", "abc123")
	params.Set("state", "f5f2a6f0")
	params.Set("timestamp", "1700000000")
	params.Set("hmac", signParams(params, secret))

	assert.True(t, VerifyHMAC(params, secret))
}

func TestVerifyHMACRejectsTampering(t *testing.T) {
	const secret = "shpss_test_secret"

	params := url.Values{}
	params.Set("shop", "demo.myshopify.com")
	params.Set("code", "abc123")
	params.Set("hmac", signParams(params, secret))
	params.Set("shop", "evil.myshopify.com")

	assert.False(t, VerifyHMAC(params, secret))
}

func TestVerifyHMACRejectsWrongSecret(t *testing.T) {
	params := url.Values{}
	params.Set("shop", "demo.myshopify.com")
	params.Set("hmac", signParams(params, "secret-a"))

	assert.False(t, VerifyHMAC(params, "secret-b"))
}

func TestVerifyHMACMissingDigest(t *testing.T) {
	params := url.Values{}
	params.Set("shop", "demo.myshopify.com")

	assert.False(t, VerifyHMAC(params, "secret"))
}

func TestVerifyHMACIgnoresSignatureParam(t *testing.T) {
	const secret = "shpss_test_secret"

	params := url.Values{}
	params.Set("shop", "demo.myshopify.com")
	params.Set("hmac", signParams(params, secret))
	params.Set("signature", "legacy-value")

	assert.True(t, VerifyHMAC(params, secret))
}

func TestVerifyWebhookHMAC(t *testing.T) {
	const secret = "shpss_test_secret"
	body := []byte(`{"id":123}`)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	digest := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	assert.True(t, VerifyWebhookHMAC(body, secret, digest))
	assert.False(t, VerifyWebhookHMAC([]byte(`{"id":456}`), secret, digest))
	assert.False(t, VerifyWebhookHMAC(body, "other-secret", digest))
	assert.False(t, VerifyWebhookHMAC(body, secret, ""))
}

func TestValidShopDomain(t *testing.T) {
	assert.True(t, ValidShopDomain("demo.myshopify.com"))
	assert.True(t, ValidShopDomain("my-store-2.myshopify.com"))
	assert.False(t, ValidShopDomain(""))
	assert.False(t, ValidShopDomain("demo.example.com"))
	assert.False(t, ValidShopDomain("demo.myshopify.com.evil.com"))
	assert.False(t, ValidShopDomain("https://demo.myshopify.com"))
}
