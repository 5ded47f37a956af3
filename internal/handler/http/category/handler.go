// Package category provides HTTP handlers for the category tree and the
// descendant-aware category article listings.
package category

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"vnnews/internal/common/pagination"
	"vnnews/internal/domain/entity"
	httphandler "vnnews/internal/handler/http"
	"vnnews/internal/handler/http/auth"
	"vnnews/internal/handler/http/pathutil"
	"vnnews/internal/handler/http/respond"
	catUC "vnnews/internal/usecase/category"
)

// DTO represents the JSON structure for a category node.
type DTO struct {
	ID           int64     `json:"id"`
	Site         string    `json:"site"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	ParentID     *int64    `json:"parent_id,omitempty"`
	Description  string    `json:"description,omitempty"`
	Icon         string    `json:"icon,omitempty"`
	DisplayOrder int       `json:"display_order"`
	Visible      bool      `json:"visible"`
	CreatedAt    time.Time `json:"created_at"`
	Children     []DTO     `json:"children,omitempty"`
}

func toDTO(n *catUC.Node) DTO {
	c := n.Category
	d := DTO{
		ID:           c.ID,
		Site:         string(c.Site),
		Name:         c.Name,
		Slug:         c.Slug,
		ParentID:     c.ParentID,
		Description:  c.Description,
		Icon:         c.Icon,
		DisplayOrder: c.DisplayOrder,
		Visible:      c.Visible,
		CreatedAt:    c.CreatedAt,
	}
	for _, child := range n.Children {
		d.Children = append(d.Children, toDTO(child))
	}
	return d
}

func statusFor(err error) int {
	var vErr *entity.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.Is(err, catUC.ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, catUC.ErrSlugTaken), errors.Is(err, entity.ErrCategoryCycle):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// TreeHandler serves the navigation tree of visible categories for a site.
type TreeHandler struct{ Svc *catUC.Service }

func (h TreeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.Svc.Tree(r.Context(), httphandler.ResolveSite(r))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	out := make([]DTO, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, toDTO(n))
	}
	respond.JSON(w, http.StatusOK, map[string]any{"items": out})
}

// ArticlesHandler lists published articles in a category and its entire
// subtree, addressed by slug.
type ArticlesHandler struct {
	Svc           *catUC.Service
	PaginationCfg pagination.Config
}

func (h ArticlesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	site := httphandler.ResolveSite(r)
	articles, err := h.Svc.ArticlesBySlug(r.Context(), site, r.PathValue("slug"), params.Limit, params.Offset())
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	items := make([]map[string]any, 0, len(articles))
	for _, a := range articles {
		items = append(items, map[string]any{
			"id":           a.ID,
			"slug":         a.Slug,
			"title":        a.Title,
			"summary":      a.Summary,
			"thumbnail":    a.Thumbnail,
			"category_id":  a.CategoryID,
			"is_featured":  a.IsFeatured,
			"is_hot":       a.IsHot,
			"view_count":   a.ViewCount,
			"published_at": a.PublishedAt,
		})
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"items": items,
		"page":  params.Page,
		"limit": params.Limit,
	})
}

// CreateHandler creates a category (admin only).
type CreateHandler struct{ Svc *catUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Site         string `json:"site"`
		Name         string `json:"name"`
		ParentID     *int64 `json:"parent_id"`
		Description  string `json:"description"`
		Icon         string `json:"icon"`
		DisplayOrder int    `json:"display_order"`
		Visible      *bool  `json:"visible"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	c, err := h.Svc.Create(r.Context(), catUC.CreateInput{
		Site:         entity.Site(req.Site),
		Name:         req.Name,
		ParentID:     req.ParentID,
		Description:  req.Description,
		Icon:         req.Icon,
		DisplayOrder: req.DisplayOrder,
		Visible:      visible,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusCreated, toDTO(&catUC.Node{Category: c}))
}

// SetParentHandler moves a category under a new parent, or to the root
// when body parent_id is null. Cycle attempts are rejected.
type SetParentHandler struct{ Svc *catUC.Service }

func (h SetParentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		ParentID *int64 `json:"parent_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.SetParent(r.Context(), id, req.ParentID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			respond.SafeError(w, http.StatusNotFound, catUC.ErrCategoryNotFound)
			return
		}
		respond.SafeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Register registers category endpoints with the given mux.
func Register(mux *http.ServeMux, svc *catUC.Service, paginationCfg pagination.Config) {
	admin := auth.Require(entity.RoleAdmin)

	mux.Handle("GET    /categories", TreeHandler{svc})
	mux.Handle("GET    /categories/{slug}/articles", ArticlesHandler{Svc: svc, PaginationCfg: paginationCfg})

	mux.Handle("POST   /admin/categories", admin(CreateHandler{svc}))
	mux.Handle("PUT    /admin/categories/{id}/parent", admin(SetParentHandler{svc}))
}
