package dto

// Data Transfer Objects for the passwordless authentication flow

// EmailRequest: payload for requesting a confirmation code
type EmailRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=150"`
}

// EmailResponse echoes the pair the code was issued for
type EmailResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// TokenRequest: payload for exchanging a confirmation code for a token
type TokenRequest struct {
	Email            string `json:"email" binding:"required,email"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// TokenResponse: the bearer access token
type TokenResponse struct {
	Token string `json:"token"`
}
