package application

import authDomain "github.com/arjunm29/nestfind/internal/modules/auth/domain"

// UpdateProfileRequest represents the request body for updating a user's profile
type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// SetPushTokenRequest registers or clears the device push token
type SetPushTokenRequest struct {
	Token *string `json:"token"`
}

// UpdatePreferencesRequest replaces the user's notification preferences
type UpdatePreferencesRequest struct {
	Preferences authDomain.NotificationPreferences `json:"preferences"`
}

// PublicUserResponse represents a user's public profile information
type PublicUserResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	CreatedAt string  `json:"created_at"`
}
