// Package newsletter provides HTTP handlers for newsletter subscriptions.
package newsletter

import (
	"encoding/json"
	"errors"
	"net/http"

	"vnnews/internal/domain/entity"
	httphandler "vnnews/internal/handler/http"
	"vnnews/internal/handler/http/respond"
	newsUC "vnnews/internal/usecase/newsletter"
)

// SubscribeHandler signs an email address up for the digest. Resubscribing
// a previously unsubscribed address reactivates it with its original token.
type SubscribeHandler struct{ Svc *newsUC.Service }

func (h SubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	sub, err := h.Svc.Subscribe(r.Context(), httphandler.ResolveSite(r), req.Email)
	if err != nil {
		var vErr *entity.ValidationError
		code := http.StatusInternalServerError
		if errors.As(err, &vErr) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]any{
		"email":  sub.Email,
		"active": sub.Active,
	})
}

// UnsubscribeHandler deactivates the subscription carrying the token from
// the mail footer link.
type UnsubscribeHandler struct{ Svc *newsUC.Service }

func (h UnsubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respond.SafeError(w, http.StatusBadRequest, errors.New("token is required"))
		return
	}

	if err := h.Svc.Unsubscribe(r.Context(), token); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, newsUC.ErrUnknownToken) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Register registers newsletter endpoints with the given mux.
// Unsubscribe accepts GET because the link lands straight from a mail client.
func Register(mux *http.ServeMux, svc *newsUC.Service) {
	mux.Handle("POST   /newsletter/subscribe", SubscribeHandler{svc})
	mux.Handle("GET    /newsletter/unsubscribe", UnsubscribeHandler{svc})
}
