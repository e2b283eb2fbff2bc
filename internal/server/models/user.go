package models

import "time"

// User is an account holder. PasswordHash is a bcrypt hash and is empty for
// accounts created through social sign-in only. ProviderIDs maps a provider
// name ("google", "github") to the external identifier verified by that
// provider.
type User struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	PasswordHash string            `json:"-"`
	ProviderIDs  map[string]string `json:"-"`
	AvatarKey    string            `json:"avatarKey,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// SocialProfile is the verified identity supplied by the social-identity
// collaborator. The server never contacts the provider itself.
type SocialProfile struct {
	Provider   string `json:"provider"`
	ProviderID string `json:"providerId"`
	Email      string `json:"email,omitempty"`
	Name       string `json:"name,omitempty"`
	AvatarKey  string `json:"avatarKey,omitempty"`
}
