// Package domain contains core concepts of the messenger.
// Entities are plain data, persisted as JSON collections.
// No runtime, storage, or UI logic should be added here.
package domain

// User is a registered account. The password hash is opaque to every
// consumer; only the auth package knows its format.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	DisplayName  string `json:"displayName"`
	PasswordHash string `json:"passwordHash"`
	AvatarURL    string `json:"avatarUrl,omitempty"`
	BannerURL    string `json:"bannerUrl,omitempty"`
	CreatedAt    int64  `json:"createdAt"`
}
