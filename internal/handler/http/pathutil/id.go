// Package pathutil provides helpers for working with URL paths: extracting
// typed path parameters and normalizing dynamic paths for metrics labels.
package pathutil

import (
	"errors"
	"net/http"
	"strconv"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ID extracts the named path parameter from a request routed through a
// pattern such as "GET /articles/{id}" and parses it as a positive int64.
//
// Returns ErrInvalidID if the parameter is missing, not a number, or <= 0.
func ID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
