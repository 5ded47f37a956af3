package http

import (
	"net/http"

	"vnnews/internal/domain/entity"
)

// SiteHeader selects the site edition when the query parameter is absent.
const SiteHeader = "X-Site"

// ResolveSite determines which site edition a request targets.
// Precedence: ?site= query parameter, then the X-Site header. Unknown or
// missing values fall back to the Vietnamese edition.
func ResolveSite(r *http.Request) entity.Site {
	if s := entity.Site(r.URL.Query().Get("site")); s.Valid() {
		return s
	}
	if s := entity.Site(r.Header.Get(SiteHeader)); s.Valid() {
		return s
	}
	return entity.SiteVN
}
