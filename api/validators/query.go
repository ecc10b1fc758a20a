package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/flowohq/storefront-gateway/pkg/errors"
)

// QueryInt reads an optional integer query parameter, falling back when the
// key is absent or blank.
func QueryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, key+" must be an integer")
	}
	return value, nil
}

// PathInt reads a required positive integer from a route parameter value.
func PathInt(key, raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, key+" must be a positive integer")
	}
	return value, nil
}
