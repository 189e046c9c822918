package model

// FID is the stable numeric player identifier supplied by the mini-app host
type FID int64

// Identity represents a player as known to the host platform.
// It is obtained once at startup and is immutable for the process lifetime.
type Identity struct {
	FID         FID    `json:"fid"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// Valid reports whether the identity carries a usable player id
func (i Identity) Valid() bool {
	return i.FID > 0
}

// Name returns the best available human-readable name for the player
func (i Identity) Name() string {
	if i.DisplayName != "" {
		return i.DisplayName
	}
	if i.Username != "" {
		return i.Username
	}
	return "anonymous"
}
