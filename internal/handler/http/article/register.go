package article

import (
	"net/http"

	"vnnews/internal/common/pagination"
	"vnnews/internal/domain/entity"
	"vnnews/internal/handler/http/auth"
	artUC "vnnews/internal/usecase/article"
)

// Register registers all article-related HTTP handlers with the given mux.
// The public read surface is open; the editor workspace requires the
// editor role and the moderation queue requires admin.
func Register(mux *http.ServeMux, svc *artUC.Service, paginationCfg pagination.Config) {
	editor := auth.Require(entity.RoleEditor)
	admin := auth.Require(entity.RoleAdmin)

	// Public surface
	mux.Handle("GET    /articles", ListHandler{Svc: svc, PaginationCfg: paginationCfg})
	mux.Handle("GET    /articles/search", SearchHandler{svc})
	mux.Handle("GET    /articles/featured", FeaturedHandler{svc})
	mux.Handle("GET    /articles/hot", HotHandler{svc})
	mux.Handle("GET    /articles/slug/{slug}", GetBySlugHandler{svc})
	mux.Handle("GET    /articles/{id}", GetHandler{svc})
	mux.Handle("POST   /articles/{id}/view", ViewHandler{svc})

	// Editor workspace
	mux.Handle("POST   /editor/articles", editor(CreateHandler{svc}))
	mux.Handle("GET    /editor/articles", editor(MineHandler{Svc: svc, PaginationCfg: paginationCfg}))
	mux.Handle("PUT    /editor/articles/{id}", editor(UpdateHandler{svc}))
	mux.Handle("POST   /editor/articles/{id}/submit", editor(SubmitHandler{svc}))
	mux.Handle("POST   /editor/articles/{id}/revise", editor(ReviseHandler{svc}))

	// Admin moderation
	mux.Handle("GET    /admin/articles/review", admin(ReviewQueueHandler{Svc: svc, PaginationCfg: paginationCfg}))
	mux.Handle("POST   /admin/articles/{id}/approve", admin(ApproveHandler{svc}))
	mux.Handle("POST   /admin/articles/{id}/reject", admin(RejectHandler{svc}))
	mux.Handle("POST   /admin/articles/{id}/hide", admin(HideHandler{svc}))
	mux.Handle("POST   /admin/articles/{id}/unhide", admin(UnhideHandler{svc}))
	mux.Handle("GET    /admin/articles/{id}/rejections", admin(RejectionsHandler{svc}))
	mux.Handle("DELETE /admin/articles/{id}", admin(DeleteHandler{svc}))
}
