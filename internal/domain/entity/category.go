package entity

import "time"

// Category is a node in a site's category tree. ParentID is nil for root
// categories. Trees are independent per site.
type Category struct {
	ID           int64
	Site         Site
	Name         string
	Slug         string
	ParentID     *int64
	Description  string
	Icon         string
	DisplayOrder int
	Visible      bool
	CreatedAt    time.Time
}
