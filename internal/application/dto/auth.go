package dto

// TokenResponse carries a freshly minted bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserInfo is the authenticated user's profile as exposed over HTTP.
type UserInfo struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Avatar      string `json:"avatar,omitempty"`
}

// AuthStatusResponse reports whether the caller holds a valid session.
// User is only present when Authenticated is true.
type AuthStatusResponse struct {
	Authenticated bool      `json:"authenticated"`
	User          *UserInfo `json:"user,omitempty"`
}

// MessageResponse is a generic status message.
type MessageResponse struct {
	Message string `json:"message"`
}
