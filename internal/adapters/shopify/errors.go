package shopify

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"shopify-cost-editor/internal/adapters/shopify/dto"
)

type ErrorKind string

const (
	KindTransport    ErrorKind = "transport"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindRateLimited  ErrorKind = "rate_limited"
	KindHTTP         ErrorKind = "http"
	KindGraphQL      ErrorKind = "graphql"
	KindUserError    ErrorKind = "user_error"
)

type UserError struct {
	Field   string
	Message string
}

// APIError covers every failure class of the Admin API: network trouble,
// HTTP status failures, GraphQL-level errors on an HTTP 200, and
// operation user errors.
type APIError struct {
	Kind       ErrorKind
	Action     string
	StatusCode int
	Messages   []string
	UserErrors []UserError
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindTransport:
		return "shopify request failed: " + strings.Join(e.Messages, "; ")
	case KindUnauthorized:
		return "shopify unauthorized: invalid or expired access token"
	case KindForbidden:
		return "shopify forbidden: insufficient permissions"
	case KindRateLimited:
		return "shopify rate limit exceeded"
	case KindGraphQL:
		return "shopify graphql errors: " + strings.Join(e.Messages, "; ")
	case KindUserError:
		parts := make([]string, 0, len(e.UserErrors))
		for _, ue := range e.UserErrors {
			msg := strings.TrimSpace(ue.Message)
			if msg == "" {
				continue
			}
			if ue.Field != "" {
				msg = fmt.Sprintf("%s: %s", ue.Field, msg)
			}
			parts = append(parts, msg)
		}
		if len(parts) == 0 {
			return fmt.Sprintf("shopify %s failed with user errors", e.Action)
		}
		return fmt.Sprintf("shopify %s failed: %s", e.Action, strings.Join(parts, "; "))
	default:
		body := strings.Join(e.Messages, "; ")
		if body == "" {
			return fmt.Sprintf("shopify request failed (HTTP %d)", e.StatusCode)
		}
		return fmt.Sprintf("shopify request failed (HTTP %d): %s", e.StatusCode, body)
	}
}

func classifyHTTPStatus(statusCode int, body []byte) *APIError {
	switch statusCode {
	case http.StatusUnauthorized:
		return &APIError{Kind: KindUnauthorized, StatusCode: statusCode}
	case http.StatusForbidden:
		return &APIError{Kind: KindForbidden, StatusCode: statusCode}
	case http.StatusTooManyRequests:
		return &APIError{Kind: KindRateLimited, StatusCode: statusCode}
	default:
		trimmed := strings.TrimSpace(string(body))
		if len(trimmed) > 200 {
			trimmed = trimmed[:200]
		}
		return &APIError{Kind: KindHTTP, StatusCode: statusCode, Messages: []string{trimmed}}
	}
}

func graphQLErrorMessages(errs []dto.GraphQLError) []string {
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := strings.TrimSpace(e.Message)
		if msg == "" {
			continue
		}
		if code, ok := e.Extensions["code"].(string); ok && code != "" {
			msg = fmt.Sprintf("%s [Code: %s]", msg, code)
		}
		messages = append(messages, msg)
	}
	if len(messages) == 0 {
		messages = append(messages, "unknown graphql error")
	}
	return messages
}

func userErrorsToError(action string, errs []dto.ShopifyUserError) error {
	if len(errs) == 0 {
		return nil
	}
	details := make([]UserError, 0, len(errs))
	for _, e := range errs {
		message := strings.TrimSpace(e.Message)
		if message == "" {
			continue
		}
		field := ""
		if len(e.Field) > 0 {
			field = strings.Join(e.Field, ".")
		}
		details = append(details, UserError{Field: field, Message: message})
	}
	if len(details) == 0 {
		details = append(details, UserError{Message: "user errors returned"})
	}
	return &APIError{Kind: KindUserError, Action: action, UserErrors: details}
}

// isNotStockedError reports whether err says the item has no inventory
// level at the location, which callers treat as "not activated there"
// rather than a failure.
func isNotStockedError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	msg := strings.ToLower(apiErr.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "not stocked")
}
