package identity

import (
	"time"
)

// Identity is the canonical, deduplicated representation of a user, keyed by
// the ID GitHub assigned them. An identity is created on first login and
// never mutated afterwards: the first-seen display name and email are
// authoritative.
type Identity struct {
	// ExternalID is the provider-assigned user ID. Globally unique,
	// immutable, and the primary key.
	ExternalID  string
	Username    string
	DisplayName string
	Email       string
	AvatarURL   string
	CreatedAt   time.Time
}

// Profile is what the OAuth provider tells us about a user after a
// successful code exchange.
type Profile struct {
	ExternalID  string
	Username    string
	DisplayName string
	Email       string
	AvatarURL   string
}

// NewIdentity builds an Identity from a provider profile, applying the
// fallbacks the profile may need: display name defaults to the username,
// and a missing email is synthesized as <username>@github.com so the email
// column stays non-null. The synthesized address is a deliberate default,
// not an error.
func NewIdentity(p Profile) *Identity {
	displayName := p.DisplayName
	if displayName == "" {
		displayName = p.Username
	}

	email := p.Email
	if email == "" {
		email = p.Username + "@github.com"
	}

	return &Identity{
		ExternalID:  p.ExternalID,
		Username:    p.Username,
		DisplayName: displayName,
		Email:       email,
		AvatarURL:   p.AvatarURL,
		CreatedAt:   time.Now().UTC(),
	}
}
