package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookieName = "session"
	shopContextKey    = "shopDomain"
)

var ErrInvalidSession = errors.New("session token is invalid or expired")

type sessionClaims struct {
	ShopDomain string `json:"shop"`
	jwt.RegisteredClaims
}

type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{secret: []byte(secret), ttl: ttl}
}

func (m *SessionManager) Issue(shopDomain string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		ShopDomain: shopDomain,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func (m *SessionManager) Parse(tokenString string) (string, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid || claims.ShopDomain == "" {
		return "", ErrInvalidSession
	}
	return claims.ShopDomain, nil
}

// Cookie builds the session cookie carrying the signed token.
func (m *SessionManager) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

// Middleware authenticates requests with a Bearer token or the session
// cookie and puts the shop domain on the request context.
func (m *SessionManager) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := bearerToken(c.Request())
			if tokenString == "" {
				if cookie, err := c.Cookie(SessionCookieName); err == nil {
					tokenString = cookie.Value
				}
			}
			if tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
			}

			shopDomain, err := m.Parse(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
			}

			c.Set(shopContextKey, shopDomain)
			return next(c)
		}
	}
}

// ShopDomain returns the authenticated shop for the current request.
func ShopDomain(c echo.Context) string {
	if v, ok := c.Get(shopContextKey).(string); ok {
		return v
	}
	return ""
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}
