package handlers

import (
	"fmt"
	"strings"
)

// shopifyGID accepts either a bare numeric id or a full gid and returns
// the gid form the Admin API expects.
func shopifyGID(resource, id string) string {
	id = strings.TrimSpace(id)
	if id == "" || strings.HasPrefix(id, "gid://") {
		return id
	}
	return fmt.Sprintf("gid://shopify/%s/%s", resource, id)
}
