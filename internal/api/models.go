package api

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name                 string `json:"name"                  validate:"required,min=3"`
	Email                string `json:"email"                 validate:"required,email"`
	Password             string `json:"password"              validate:"required,min=8,max=72"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// RegisterResponse carries the post-registration redirect target.
type RegisterResponse struct {
	Redirect string `json:"redirect"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response payload for authentication
// endpoints.
type AuthResponse struct {
	// Token is the JWT access token used for API authorization
	Token string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	// RefreshToken is the JWT refresh token used to obtain a new token pair
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TaskActionRequest defines the payload shared by the tick and change
// endpoints. Both ids must be positive; UserID must additionally match the
// authenticated user, which the service enforces.
type TaskActionRequest struct {
	UserID int64 `json:"userId" validate:"required,min=1"`
	TaskID int64 `json:"taskId" validate:"required,min=1"`
}
