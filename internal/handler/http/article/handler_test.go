package article_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vnnews/internal/common/pagination"
	"vnnews/internal/domain/entity"
	"vnnews/internal/handler/http/article"
	"vnnews/internal/handler/http/auth"
	"vnnews/internal/repository"
	artUC "vnnews/internal/usecase/article"
)

/* ───────── stubs ───────── */

// stubRepo embeds the interface and overrides only what each test needs.
// Calling an unstubbed method panics, which keeps tests honest about the
// repository surface they exercise.
type stubRepo struct {
	repository.ArticleRepository

	articles map[int64]*entity.Article
	created  *entity.Article

	approved   []int64
	rejected   map[int64]string
	views      map[int64]int
	softDelete []int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		articles: make(map[int64]*entity.Article),
		rejected: make(map[int64]string),
		views:    make(map[int64]int),
	}
}

func (s *stubRepo) Create(_ context.Context, a *entity.Article) error {
	a.ID = int64(len(s.articles) + 1)
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	s.articles[a.ID] = a
	s.created = a
	return nil
}

func (s *stubRepo) Get(_ context.Context, id int64, includeDeleted bool) (*entity.Article, error) {
	a, ok := s.articles[id]
	if !ok || (a.IsDeleted && !includeDeleted) {
		return nil, nil
	}
	return a, nil
}

func (s *stubRepo) GetBySlug(_ context.Context, site entity.Site, slug string) (*entity.Article, error) {
	for _, a := range s.articles {
		if a.Site == site && a.Slug == slug && !a.IsDeleted {
			return a, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) List(_ context.Context, site entity.Site, filters repository.ArticleListFilters) ([]*entity.Article, error) {
	var out []*entity.Article
	for _, a := range s.articles {
		if a.Site != site || a.IsDeleted {
			continue
		}
		if filters.Status != nil && a.Status != *filters.Status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *stubRepo) Update(_ context.Context, id int64, patch repository.ArticlePatch) error {
	a, ok := s.articles[id]
	if !ok {
		return entity.ErrNotFound
	}
	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Status != nil {
		a.Status = *patch.Status
	}
	return nil
}

func (s *stubRepo) Approve(_ context.Context, id, approverID int64) error {
	a := s.articles[id]
	a.Status = entity.StatusPublished
	a.ApprovedBy = &approverID
	s.approved = append(s.approved, id)
	return nil
}

func (s *stubRepo) Reject(_ context.Context, id, approverID int64, reason *string) error {
	a := s.articles[id]
	a.Status = entity.StatusRejected
	a.ApprovedBy = &approverID
	if reason != nil {
		s.rejected[id] = *reason
	} else {
		s.rejected[id] = ""
	}
	return nil
}

func (s *stubRepo) SoftDelete(_ context.Context, id int64) error {
	a, ok := s.articles[id]
	if !ok || a.IsDeleted {
		return entity.ErrNotFound
	}
	a.IsDeleted = true
	s.softDelete = append(s.softDelete, id)
	return nil
}

func (s *stubRepo) IncrementView(_ context.Context, id int64) error {
	if _, ok := s.articles[id]; !ok {
		return entity.ErrNotFound
	}
	s.views[id]++
	return nil
}

type stubCategories struct {
	repository.CategoryRepository
}

func (stubCategories) Get(_ context.Context, id int64) (*entity.Category, error) {
	if id == 3 {
		return &entity.Category{ID: 3, Site: entity.SiteVN, Name: "Kinh tế", Slug: "kinh-te"}, nil
	}
	return nil, nil
}

func newService(repo *stubRepo) *artUC.Service {
	return &artUC.Service{Repo: repo, Categories: stubCategories{}}
}

func seed(repo *stubRepo, status entity.Status, slug string) *entity.Article {
	a := &entity.Article{
		ID:         int64(len(repo.articles) + 1),
		Site:       entity.SiteVN,
		Slug:       slug,
		Title:      "Tin Moi",
		Content:    "Noi dung",
		CategoryID: 3,
		CreatedBy:  9,
		Status:     status,
	}
	repo.articles[a.ID] = a
	return a
}

func editorRequest(r *http.Request, role entity.Role, userID int64) *http.Request {
	claims := &auth.Claims{UserID: userID, Username: "nguyenvana", Role: role}
	return r.WithContext(auth.WithClaims(r.Context(), claims))
}

/* ───────── public surface ───────── */

func TestGetHandler_PublishedOnly(t *testing.T) {
	repo := newStubRepo()
	seed(repo, entity.StatusPublished, "tin-moi")
	seed(repo, entity.StatusDraft, "ban-nhap")

	mux := http.NewServeMux()
	mux.Handle("GET /articles/{id}", article.GetHandler{Svc: newService(repo)})

	tests := []struct {
		name string
		url  string
		want int
	}{
		{name: "published visible", url: "/articles/1", want: http.StatusOK},
		{name: "draft hidden", url: "/articles/2", want: http.StatusNotFound},
		{name: "unknown id", url: "/articles/99", want: http.StatusNotFound},
		{name: "invalid id", url: "/articles/abc", want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.url, nil))
			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestGetBySlugHandler(t *testing.T) {
	repo := newStubRepo()
	seed(repo, entity.StatusPublished, "tin-moi")

	mux := http.NewServeMux()
	mux.Handle("GET /articles/slug/{slug}", article.GetBySlugHandler{Svc: newService(repo)})

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/articles/slug/tin-moi?site=vn", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var dto article.DTO
	if err := json.Unmarshal(rr.Body.Bytes(), &dto); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if dto.Slug != "tin-moi" {
		t.Errorf("slug = %q, want tin-moi", dto.Slug)
	}
}

func TestViewHandler_CountsView(t *testing.T) {
	repo := newStubRepo()
	seed(repo, entity.StatusPublished, "tin-moi")

	mux := http.NewServeMux()
	mux.Handle("POST /articles/{id}/view", article.ViewHandler{Svc: newService(repo)})

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/articles/1/view", nil))

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if repo.views[1] != 1 {
		t.Errorf("views = %d, want 1", repo.views[1])
	}
}

/* ───────── editor workspace ───────── */

func TestCreateHandler_Success(t *testing.T) {
	repo := newStubRepo()
	handler := article.CreateHandler{Svc: newService(repo)}

	body := `{
		"site": "vn",
		"title": "Kinh Te Hoi Phuc",
		"content": "Noi dung bai viet",
		"summary": "Tom tat",
		"category_id": 3
	}`
	req := httptest.NewRequest(http.MethodPost, "/editor/articles", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = editorRequest(req, entity.RoleEditor, 9)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}
	if repo.created == nil {
		t.Fatal("article was not created")
	}
	if repo.created.CreatedBy != 9 {
		t.Errorf("CreatedBy = %d, want 9", repo.created.CreatedBy)
	}
	if repo.created.Status != entity.StatusDraft {
		t.Errorf("Status = %q, want draft", repo.created.Status)
	}
}

func TestCreateHandler_ValidationError(t *testing.T) {
	handler := article.CreateHandler{Svc: newService(newStubRepo())}

	req := httptest.NewRequest(http.MethodPost, "/editor/articles",
		strings.NewReader(`{"site":"vn","title":"","content":"x","category_id":3}`))
	req = editorRequest(req, entity.RoleEditor, 9)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestCreateHandler_MissingClaims(t *testing.T) {
	handler := article.CreateHandler{Svc: newService(newStubRepo())}

	req := httptest.NewRequest(http.MethodPost, "/editor/articles",
		strings.NewReader(`{"site":"vn","title":"T","content":"x","category_id":3}`))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestSubmitHandler_OwnershipEnforced(t *testing.T) {
	repo := newStubRepo()
	seed(repo, entity.StatusDraft, "ban-nhap")

	mux := http.NewServeMux()
	mux.Handle("POST /editor/articles/{id}/submit", article.SubmitHandler{Svc: newService(repo)})

	t.Run("owner submits", func(t *testing.T) {
		req := editorRequest(httptest.NewRequest(http.MethodPost, "/editor/articles/1/submit", nil), entity.RoleEditor, 9)
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)
		if rr.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusNoContent, rr.Body.String())
		}
		if repo.articles[1].Status != entity.StatusPending {
			t.Errorf("status = %q, want pending", repo.articles[1].Status)
		}
	})

	t.Run("other editor forbidden", func(t *testing.T) {
		repo.articles[1].Status = entity.StatusDraft
		req := editorRequest(httptest.NewRequest(http.MethodPost, "/editor/articles/1/submit", nil), entity.RoleEditor, 13)
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)
		if rr.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusForbidden)
		}
	})
}

/* ───────── admin moderation ───────── */

func TestApproveHandler(t *testing.T) {
	repo := newStubRepo()
	seed(repo, entity.StatusPending, "cho-duyet")

	mux := http.NewServeMux()
	mux.Handle("POST /admin/articles/{id}/approve", article.ApproveHandler{Svc: newService(repo)})

	req := editorRequest(httptest.NewRequest(http.MethodPost, "/admin/articles/1/approve", nil), entity.RoleAdmin, 2)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusNoContent, rr.Body.String())
	}
	if repo.articles[1].Status != entity.StatusPublished {
		t.Errorf("status = %q, want published", repo.articles[1].Status)
	}
	if repo.articles[1].ApprovedBy == nil || *repo.articles[1].ApprovedBy != 2 {
		t.Errorf("ApprovedBy = %v, want 2", repo.articles[1].ApprovedBy)
	}
}

func TestApproveHandler_OnlyPending(t *testing.T) {
	repo := newStubRepo()
	seed(repo, entity.StatusDraft, "ban-nhap")

	mux := http.NewServeMux()
	mux.Handle("POST /admin/articles/{id}/approve", article.ApproveHandler{Svc: newService(repo)})

	req := editorRequest(httptest.NewRequest(http.MethodPost, "/admin/articles/1/approve", nil), entity.RoleAdmin, 2)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusConflict)
	}
}

func TestRejectHandler_WithReason(t *testing.T) {
	repo := newStubRepo()
	seed(repo, entity.StatusPending, "cho-duyet")

	mux := http.NewServeMux()
	mux.Handle("POST /admin/articles/{id}/reject", article.RejectHandler{Svc: newService(repo)})

	req := httptest.NewRequest(http.MethodPost, "/admin/articles/1/reject",
		strings.NewReader(`{"reason":"Thiếu nguồn trích dẫn"}`))
	req = editorRequest(req, entity.RoleAdmin, 2)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusNoContent, rr.Body.String())
	}
	if repo.rejected[1] != "Thiếu nguồn trích dẫn" {
		t.Errorf("reason = %q", repo.rejected[1])
	}
}

func TestRejectHandler_EmptyBody(t *testing.T) {
	repo := newStubRepo()
	seed(repo, entity.StatusPending, "cho-duyet")

	mux := http.NewServeMux()
	mux.Handle("POST /admin/articles/{id}/reject", article.RejectHandler{Svc: newService(repo)})

	req := editorRequest(httptest.NewRequest(http.MethodPost, "/admin/articles/1/reject", nil), entity.RoleAdmin, 2)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusNoContent, rr.Body.String())
	}
	if reason, ok := repo.rejected[1]; !ok || reason != "" {
		t.Errorf("rejected[1] = %q, %t; want recorded without reason", reason, ok)
	}
}

func TestDeleteHandler(t *testing.T) {
	repo := newStubRepo()
	seed(repo, entity.StatusPublished, "tin-moi")

	mux := http.NewServeMux()
	mux.Handle("DELETE /admin/articles/{id}", article.DeleteHandler{Svc: newService(repo)})

	req := editorRequest(httptest.NewRequest(http.MethodDelete, "/admin/articles/1", nil), entity.RoleAdmin, 2)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if !repo.articles[1].IsDeleted {
		t.Error("article was not soft-deleted")
	}

	t.Run("second delete is 404", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, editorRequest(httptest.NewRequest(http.MethodDelete, "/admin/articles/1", nil), entity.RoleAdmin, 2))
		if rr.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
		}
	})
}

func TestListHandler_Pagination(t *testing.T) {
	repo := newStubRepo()
	seed(repo, entity.StatusPublished, "tin-1")

	handler := article.ListHandler{Svc: newService(repo), PaginationCfg: pagination.DefaultConfig()}

	t.Run("defaults", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/articles", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
		}
	})

	t.Run("bad page", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/articles?page=0", nil))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
		}
	})
}
