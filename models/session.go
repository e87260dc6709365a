package models

// Session is what the auth gate keeps in Redis per issued token.
type Session struct {
	Token        string `json:"token"`
	UserID       string `json:"user_id"`
	CreatedAt    string `json:"created_at"`
	ExpiresAt    string `json:"expires_at"`
	LastActivity string `json:"last_activity"`
}
