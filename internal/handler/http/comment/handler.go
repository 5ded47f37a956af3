// Package comment provides HTTP handlers for reader comments.
package comment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"vnnews/internal/domain/entity"
	"vnnews/internal/handler/http/auth"
	"vnnews/internal/handler/http/pathutil"
	"vnnews/internal/handler/http/respond"
	commentUC "vnnews/internal/usecase/comment"
)

type commentDTO struct {
	ID        int64     `json:"id"`
	ArticleID int64     `json:"article_id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func toDTO(c *entity.Comment) commentDTO {
	return commentDTO{
		ID:        c.ID,
		ArticleID: c.ArticleID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func statusFor(err error) int {
	var vErr *entity.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.Is(err, commentUC.ErrArticleNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ListHandler returns the comments on a published article, newest first.
type ListHandler struct{ Svc *commentUC.Service }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	limit, offset := 0, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}

	comments, err := h.Svc.List(r.Context(), id, limit, offset)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	items := make([]commentDTO, 0, len(comments))
	for _, c := range comments {
		items = append(items, toDTO(c))
	}
	respond.JSON(w, http.StatusOK, map[string]any{"items": items})
}

// CreateHandler posts a comment as the authenticated user.
type CreateHandler struct{ Svc *commentUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r.Context())
	if claims == nil {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	c, err := h.Svc.Add(r.Context(), id, claims.UserID, req.Content)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(c))
}

// Register registers comment endpoints with the given mux. Reading is
// public; posting requires any authenticated account.
func Register(mux *http.ServeMux, svc *commentUC.Service) {
	authed := auth.Require()

	mux.Handle("GET    /articles/{id}/comments", ListHandler{svc})
	mux.Handle("POST   /articles/{id}/comments", authed(CreateHandler{svc}))
}
