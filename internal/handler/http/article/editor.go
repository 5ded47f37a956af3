package article

import (
	"encoding/json"
	"errors"
	"net/http"

	"vnnews/internal/common/pagination"
	"vnnews/internal/domain/entity"
	"vnnews/internal/handler/http/auth"
	"vnnews/internal/handler/http/pathutil"
	"vnnews/internal/handler/http/respond"
	"vnnews/internal/repository"
	artUC "vnnews/internal/usecase/article"
)

// actorID returns the ID to run workflow checks against. Admins operate
// with ID zero, which bypasses ownership checks in the use case layer.
func actorID(r *http.Request) int64 {
	claims := auth.FromContext(r.Context())
	if claims == nil {
		return 0
	}
	if claims.Role == entity.RoleAdmin {
		return 0
	}
	return claims.UserID
}

// CreateHandler creates a draft owned by the authenticated editor.
type CreateHandler struct{ Svc *artUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r.Context())
	if claims == nil {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	var req struct {
		Site       string `json:"site"`
		Title      string `json:"title"`
		Content    string `json:"content"`
		Summary    string `json:"summary"`
		Thumbnail  string `json:"thumbnail"`
		CategoryID int64  `json:"category_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	art, err := h.Svc.Create(r.Context(), artUC.CreateInput{
		Site:       entity.Site(req.Site),
		Title:      req.Title,
		Content:    req.Content,
		Summary:    req.Summary,
		Thumbnail:  req.Thumbnail,
		CategoryID: req.CategoryID,
		CreatedBy:  claims.UserID,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusCreated, toDTO(art))
}

// UpdateHandler patches an article's editable fields. Only the owner may
// edit; admins bypass the ownership check.
type UpdateHandler struct{ Svc *artUC.Service }

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Title      *string `json:"title"`
		Content    *string `json:"content"`
		Summary    *string `json:"summary"`
		Thumbnail  *string `json:"thumbnail"`
		CategoryID *int64  `json:"category_id"`
		IsFeatured *bool   `json:"is_featured"`
		IsHot      *bool   `json:"is_hot"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	err = h.Svc.Update(r.Context(), artUC.UpdateInput{
		ID:         id,
		EditorID:   actorID(r),
		Title:      req.Title,
		Content:    req.Content,
		Summary:    req.Summary,
		Thumbnail:  req.Thumbnail,
		CategoryID: req.CategoryID,
		IsFeatured: req.IsFeatured,
		IsHot:      req.IsHot,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MineHandler lists the authenticated editor's own articles with status
// and keyword filters plus pagination metadata.
type MineHandler struct {
	Svc           *artUC.Service
	PaginationCfg pagination.Config
}

func (h MineHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r.Context())
	if claims == nil {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	filters := repository.CreatorFilters{
		Search: r.URL.Query().Get("q"),
		Limit:  params.Limit,
		Offset: params.Offset(),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := entity.Status(raw)
		if !status.Valid() {
			respond.SafeError(w, http.StatusBadRequest, errors.New("invalid status filter"))
			return
		}
		filters.Status = &status
	}

	articles, total, err := h.Svc.ListByCreator(r.Context(), claims.UserID, filters)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"items":      toListDTOs(articles),
		"pagination": pagination.NewMetadata(total, params),
	})
}

// SubmitHandler moves a draft into the review queue.
type SubmitHandler struct{ Svc *artUC.Service }

func (h SubmitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Submit(r.Context(), id, actorID(r)); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReviseHandler returns an article to draft for rework, typically after
// a rejection.
type ReviseHandler struct{ Svc *artUC.Service }

func (h ReviseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Revise(r.Context(), id, actorID(r)); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
