package dto

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane.doe@university.ac.za"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// RefreshTokenRequest is the token refresh payload
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries the issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn"`
	RefreshExpiresIn int    `json:"refreshExpiresIn"`
}

// ProfileResponse is the authenticated staff member's own profile
type ProfileResponse struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
}

// LoginResponse bundles tokens with the profile
type LoginResponse struct {
	Tokens  TokenResponse   `json:"tokens"`
	Profile ProfileResponse `json:"profile"`
}
