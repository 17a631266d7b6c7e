package model

import "time"

// Editor is an account allowed to create and edit listings.
//
// An editor is identified by (Provider, Subject): "github" + the numeric
// GitHub user id, or "password" + "admin" for the shared admin password.
// We still generate our own internal ID (xid) so session tokens never carry a
// third-party identifier.
type Editor struct {
	ID        string    `json:"id"`
	Provider  string    `json:"provider"`
	Subject   string    `json:"-"`
	Login     string    `json:"login"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	ProviderGitHub   = "github"
	ProviderPassword = "password"
)
