package article

import (
	"net/http"
	"strconv"

	"vnnews/internal/common/pagination"
	"vnnews/internal/domain/entity"
	httphandler "vnnews/internal/handler/http"
	"vnnews/internal/handler/http/pathutil"
	"vnnews/internal/handler/http/respond"
	artUC "vnnews/internal/usecase/article"
)

// ListHandler serves the public feed of published articles, newest first.
type ListHandler struct {
	Svc           *artUC.Service
	PaginationCfg pagination.Config
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	site := httphandler.ResolveSite(r)
	articles, err := h.Svc.ListPublished(r.Context(), site, params.Limit, params.Offset())
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"items": toListDTOs(articles),
		"page":  params.Page,
		"limit": params.Limit,
	})
}

// GetHandler serves a published article by numeric ID.
type GetHandler struct{ Svc *artUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	art, err := h.Svc.Get(r.Context(), id, false)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	// Unpublished articles are invisible on the public surface.
	if art.Status != entity.StatusPublished {
		respond.SafeError(w, http.StatusNotFound, artUC.ErrArticleNotFound)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(art))
}

// GetBySlugHandler serves a published article by its site-scoped slug.
type GetBySlugHandler struct{ Svc *artUC.Service }

func (h GetBySlugHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	site := httphandler.ResolveSite(r)
	art, err := h.Svc.GetBySlug(r.Context(), site, r.PathValue("slug"))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	if art.Status != entity.StatusPublished {
		respond.SafeError(w, http.StatusNotFound, artUC.ErrArticleNotFound)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(art))
}

// SearchHandler serves keyword search over published articles.
type SearchHandler struct{ Svc *artUC.Service }

func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	site := httphandler.ResolveSite(r)
	keyword := r.URL.Query().Get("q")

	articles, err := h.Svc.Search(r.Context(), site, keyword, limitParam(r))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"items": toListDTOs(articles)})
}

// FeaturedHandler serves the editor-curated front page selection.
type FeaturedHandler struct{ Svc *artUC.Service }

func (h FeaturedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.Featured(r.Context(), httphandler.ResolveSite(r), limitParam(r))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"items": toListDTOs(articles)})
}

// HotHandler serves trending articles ordered by view count.
type HotHandler struct{ Svc *artUC.Service }

func (h HotHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.Hot(r.Context(), httphandler.ResolveSite(r), limitParam(r))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"items": toListDTOs(articles)})
}

// ViewHandler records one page view. Fire-and-forget from the reader's
// perspective: the counter is approximate.
type ViewHandler struct{ Svc *artUC.Service }

func (h ViewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.RecordView(r.Context(), id); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// limitParam reads an optional ?limit= parameter. Zero means the use
// case default applies.
func limitParam(r *http.Request) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
