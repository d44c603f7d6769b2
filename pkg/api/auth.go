package api

type LoginRequest struct {
	Principal string `json:"principal"`
	APIKey    string `json:"api_key"`
}

type LoginResponse struct {
	Token string `json:"token"`

	// ExpiresAt is the token expiry as unix seconds.
	ExpiresAt int64 `json:"expires_at"`
}

type WhoAmIRequest struct{}

type WhoAmIResponse struct {
	Principal string `json:"principal"`
	IsOwner   bool   `json:"is_owner"`
}
