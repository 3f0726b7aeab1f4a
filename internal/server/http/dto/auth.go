package dto

// RegisterRequest describes the sign-up payload.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest describes email/password payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ErrorResponse carries a stable error kind and a human readable message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
