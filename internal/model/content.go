package model

import "time"

// Research, Project and Blog are per-user repeatable collections. Unlike
// Home/About there is no singleton rule — users create, edit and delete items
// freely. Each item carries IsVisible so drafts can be hidden from the public
// portfolio without deleting them.

// Research is a single research-interest entry.
type Research struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle,omitempty"`
	Para      string    `json:"para,omitempty"`
	Points    []string  `json:"points,omitempty"` // short highlight bullets
	IsVisible bool      `json:"isVisible"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Project is a single project entry, the richest content type: it nests a
// publication list and funding details.
type Project struct {
	ID             string        `json:"id"`
	UserID         string        `json:"userId"`
	Title          string        `json:"title"`
	Description    string        `json:"description,omitempty"`
	Link           string        `json:"link,omitempty"`
	Tags           []string      `json:"tags,omitempty"`
	FundingSources []string      `json:"fundingSources,omitempty"`
	FundingAmount  float64       `json:"fundingAmount,omitempty"`
	Collaborators  []string      `json:"collaborators,omitempty"`
	StartDate      *time.Time    `json:"startDate,omitempty"`
	EndDate        *time.Time    `json:"endDate,omitempty"` // nil while ongoing
	Publications   []Publication `json:"publications,omitempty"`
	IsVisible      bool          `json:"isVisible"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// Publication is one entry in a project's publication list.
type Publication struct {
	Title      string   `json:"title"`
	Authors    []string `json:"authors,omitempty"`
	Conference string   `json:"conference,omitempty"`
	Journal    string   `json:"journal,omitempty"`
	Year       int      `json:"year,omitempty"`
	Link       string   `json:"link,omitempty"`
}

// Blog is a single blog-post entry. Posts link out to the full article;
// only the teaser lives here.
type Blog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Title     string    `json:"title"`
	Para      string    `json:"para,omitempty"`
	Link      string    `json:"link,omitempty"`
	IsVisible bool      `json:"isVisible"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Portfolio is the public aggregate served at /api/portfolio/{slug}: the
// owner's profile plus every visible content item, fetched in one call so the
// frontend renders a portfolio page from a single request.
type Portfolio struct {
	User     *User      `json:"user"`
	Home     *Home      `json:"home,omitempty"`
	About    *About     `json:"about,omitempty"`
	Research []Research `json:"research"`
	Projects []Project  `json:"project"`
	Blogs    []Blog     `json:"blog"`
}
