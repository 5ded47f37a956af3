// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article, Category and User, along
// with their validation rules and domain-specific errors.
package entity

import "time"

// Site identifies which edition of the site a piece of content belongs to.
type Site string

const (
	// SiteVN is the Vietnamese (domestic) edition.
	SiteVN Site = "vn"
	// SiteEN is the English (international) edition.
	SiteEN Site = "en"
)

// Valid reports whether the site value is one of the known editions.
func (s Site) Valid() bool {
	return s == SiteVN || s == SiteEN
}

// Location returns the display timezone for the site.
// Vietnamese content is rendered in Asia/Ho_Chi_Minh, English content in UTC.
func (s Site) Location() *time.Location {
	if s == SiteVN {
		if loc, err := time.LoadLocation("Asia/Ho_Chi_Minh"); err == nil {
			return loc
		}
	}
	return time.UTC
}

// Status represents the editorial state of an article.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusPublished Status = "published"
	StatusHidden    Status = "hidden"
	StatusRejected  Status = "rejected"
)

// Valid reports whether the status is a member of the closed status set.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPublished, StatusHidden, StatusRejected:
		return true
	}
	return false
}

// transitions is the editorial workflow table. Any status may return to
// draft; everything else follows submit -> review -> publish/hide.
var transitions = map[Status][]Status{
	StatusDraft:     {StatusPending},
	StatusPending:   {StatusPublished, StatusRejected},
	StatusPublished: {StatusHidden},
	StatusHidden:    {StatusPublished},
	StatusRejected:  {},
}

// CanTransition reports whether moving an article from one status to
// another is allowed by the workflow table.
func CanTransition(from, to Status) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if to == StatusDraft {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Article represents a news article in either site edition.
// Soft-deleted articles stay in the store but are invisible to
// user-facing queries.
type Article struct {
	ID          int64
	Site        Site
	Slug        string
	Title       string
	Content     string
	Summary     string
	Thumbnail   string
	CategoryID  int64
	CreatedBy   int64
	ApprovedBy  *int64
	Status      Status
	IsFeatured  bool
	IsHot       bool
	ViewCount   int64
	IsDeleted   bool
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Rejection is an append-only audit record of why an article was rejected.
type Rejection struct {
	ID         int64
	ArticleID  int64
	RejectedBy int64
	Reason     string
	CreatedAt  time.Time
}
