package article

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"vnnews/internal/common/pagination"
	httphandler "vnnews/internal/handler/http"
	"vnnews/internal/handler/http/auth"
	"vnnews/internal/handler/http/pathutil"
	"vnnews/internal/handler/http/respond"
	"vnnews/internal/observability/metrics"
	artUC "vnnews/internal/usecase/article"
)

// ReviewQueueHandler lists pending articles awaiting moderation.
type ReviewQueueHandler struct {
	Svc           *artUC.Service
	PaginationCfg pagination.Config
}

func (h ReviewQueueHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	site := httphandler.ResolveSite(r)
	articles, err := h.Svc.ListForReview(r.Context(), site, params.Limit, params.Offset())
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

// ApproveHandler publishes a pending article.
type ApproveHandler struct{ Svc *artUC.Service }

func (h ApproveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	claims := auth.FromContext(r.Context())
	if claims == nil {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	if err := h.Svc.Approve(r.Context(), id, claims.UserID); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	metrics.RecordArticlePublished(string(httphandler.ResolveSite(r)))
	w.WriteHeader(http.StatusNoContent)
}

// RejectHandler returns a pending article to its author. The reason is
// optional; when present it is appended to the rejection log.
type RejectHandler struct{ Svc *artUC.Service }

func (h RejectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	claims := auth.FromContext(r.Context())
	if claims == nil {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	var reason *string
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Reason != "" {
		reason = &req.Reason
	}

	if err := h.Svc.Reject(r.Context(), id, claims.UserID, reason); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	metrics.RecordArticleRejected(string(httphandler.ResolveSite(r)))
	w.WriteHeader(http.StatusNoContent)
}

// HideHandler retracts a published article from the public surface.
type HideHandler struct{ Svc *artUC.Service }

func (h HideHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Hide(r.Context(), id); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnhideHandler restores a hidden article to published.
type UnhideHandler struct{ Svc *artUC.Service }

func (h UnhideHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Unhide(r.Context(), id); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RejectionsHandler returns the rejection audit log for an article.
type RejectionsHandler struct{ Svc *artUC.Service }

func (h RejectionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	rejections, err := h.Svc.Rejections(r.Context(), id)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	out := make([]rejectionDTO, 0, len(rejections))
	for _, rej := range rejections {
		out = append(out, rejectionDTO{
			ID:         rej.ID,
			RejectedBy: rej.RejectedBy,
			Reason:     rej.Reason,
			CreatedAt:  rej.CreatedAt,
		})
	}
	respond.JSON(w, http.StatusOK, map[string]any{"items": out})
}

// DeleteHandler soft-deletes an article. The row stays for audit but
// vanishes from every user-facing query.
type DeleteHandler struct{ Svc *artUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
