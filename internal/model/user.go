// Package model defines the data structures used throughout the application.
package model

import "time"

// User is the identity record behind every portfolio.
//
// Identity comes from Google OAuth (email is the stable external key) or from
// email/password registration. Either way we generate our own internal string
// ID (xid) so primary keys are never tied to a third party's numbering.
//
// The slug is the URL-safe public identifier used to build portfolio URLs
// (/portfolio/{slug}). It is assigned lazily — on first sign-in if the record
// was created without one — and is UNIQUE across all users at the store
// level. Once set it only changes through an explicit profile edit, which
// must re-validate uniqueness.
//
// Image is the avatar URL supplied by the identity provider;
// CustomImageURL is the user's own override and wins when non-empty.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Image          string    `json:"image,omitempty"`
	CustomImageURL string    `json:"customImageUrl,omitempty"`
	Slug           string    `json:"slug,omitempty"` // empty until assigned
	IsVisible      bool      `json:"isVisible"`
	PasswordHash   string    `json:"-"` // empty for OAuth-only accounts, never serialized
	Theme          *Theme    `json:"theme,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// AvatarURL returns the image to display: the user's custom upload if set,
// otherwise the provider-supplied one.
func (u *User) AvatarURL() string {
	if u.CustomImageURL != "" {
		return u.CustomImageURL
	}
	return u.Image
}

// Theme holds a user's display customization. It is persisted per user and
// passed explicitly to whoever renders the portfolio — there is no
// process-wide default theme object.
type Theme struct {
	Colors     map[string]string `json:"colors,omitempty"` // role name → hex, e.g. "primary" → "#2F2E2E"
	FontFamily string            `json:"fontFamily,omitempty"`
	FontSize   int               `json:"fontSize,omitempty"`
}
