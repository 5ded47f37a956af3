// Package article provides HTTP handlers for the article endpoints: the
// public read surface, the editor workspace and the admin moderation queue.
package article

import (
	"errors"
	"net/http"
	"time"

	"vnnews/internal/domain/entity"
	artUC "vnnews/internal/usecase/article"
)

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID          int64      `json:"id" example:"1"`
	Site        string     `json:"site" example:"vn"`
	Slug        string     `json:"slug" example:"kinh-te-hoi-phuc"`
	Title       string     `json:"title" example:"Kinh tế hồi phục"`
	Content     string     `json:"content,omitempty"`
	Summary     string     `json:"summary"`
	Thumbnail   string     `json:"thumbnail,omitempty"`
	CategoryID  int64      `json:"category_id" example:"3"`
	Status      string     `json:"status" example:"published"`
	IsFeatured  bool       `json:"is_featured"`
	IsHot       bool       `json:"is_hot"`
	ViewCount   int64      `json:"view_count"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// toDTO maps an article for detail responses.
func toDTO(a *entity.Article) DTO {
	return DTO{
		ID:          a.ID,
		Site:        string(a.Site),
		Slug:        a.Slug,
		Title:       a.Title,
		Content:     a.Content,
		Summary:     a.Summary,
		Thumbnail:   a.Thumbnail,
		CategoryID:  a.CategoryID,
		Status:      string(a.Status),
		IsFeatured:  a.IsFeatured,
		IsHot:       a.IsHot,
		ViewCount:   a.ViewCount,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// toListDTOs maps articles for listings, dropping the body to keep
// responses small.
func toListDTOs(articles []*entity.Article) []DTO {
	out := make([]DTO, 0, len(articles))
	for _, a := range articles {
		d := toDTO(a)
		d.Content = ""
		out = append(out, d)
	}
	return out
}

// rejectionDTO is one entry of the moderation audit log.
type rejectionDTO struct {
	ID         int64     `json:"id"`
	RejectedBy int64     `json:"rejected_by"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

// statusFor maps use case errors to HTTP status codes.
func statusFor(err error) int {
	var vErr *entity.ValidationError
	var tErr *entity.TransitionError
	switch {
	case errors.As(err, &vErr), errors.Is(err, artUC.ErrInvalidArticleID):
		return http.StatusBadRequest
	case errors.Is(err, artUC.ErrArticleNotFound), errors.Is(err, artUC.ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, artUC.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, artUC.ErrSlugTaken), errors.As(err, &tErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
