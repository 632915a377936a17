package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

var shopDomainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-]*\.myshopify\.com$`)

// ValidShopDomain reports whether the value is a plausible *.myshopify.com
// domain. Callback parameters are attacker controlled until verified.
func ValidShopDomain(shopDomain string) bool {
	return shopDomainPattern.MatchString(strings.TrimSpace(shopDomain))
}

// VerifyHMAC checks the hmac parameter Shopify appends to OAuth and app
// links: every other query parameter sorted by key, joined with "&", signed
// with HMAC-SHA256 over the app secret and hex encoded.
func VerifyHMAC(params url.Values, secret string) bool {
	provided := params.Get("hmac")
	if provided == "" {
		return false
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		if key == "hmac" || key == "signature" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+strings.Join(params[key], ","))
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strings.Join(pairs, "&")))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(strings.ToLower(provided)))
}

// VerifyWebhookHMAC checks the X-Shopify-Hmac-Sha256 header of a webhook
// delivery: HMAC-SHA256 over the raw request body, base64 encoded.
func VerifyWebhookHMAC(body []byte, secret, provided string) bool {
	if provided == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(provided))
}
