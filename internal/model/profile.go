package model

import "time"

// Home and About are per-user singleton documents: at most one of each should
// exist per user. The singleton rule is enforced by application logic (the
// identity resolver checks existence before creating), not by a store
// constraint — see the provisioning notes in service/identity.go.

// Home holds the landing-section content of a portfolio.
type Home struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	CTAHeading string    `json:"ctaheading,omitempty"`
	CTAPara    string    `json:"ctapara,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// About holds the biography section of a portfolio.
//
// Interests, Responsibilities and Expertise are real lists here. The admin UI
// edits them as comma-separated strings, but that is a presentation encoding
// — it never reaches this model or the store.
type About struct {
	ID               string      `json:"id"`
	UserID           string      `json:"userId"`
	UserTag          string      `json:"userTag,omitempty"` // short tagline under the name
	Quote            string      `json:"quote,omitempty"`
	LinkedinURL      string      `json:"linkedinurl,omitempty"`
	TwitterURL       string      `json:"twitterurl,omitempty"`
	GithubURL        string      `json:"githuburl,omitempty"`
	Interests        []string    `json:"interest,omitempty"`
	Responsibilities []string    `json:"responsibilities,omitempty"`
	Expertise        []string    `json:"expertise,omitempty"`
	Education        []Education `json:"education,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// Education is one entry in the About education list.
type Education struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Year   int    `json:"year,omitempty"`
}
