package auth

import "github.com/user/movieapi-go/models"

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Username string `json:"Username" example:"alice"`
	Password string `json:"Password" example:"correcthorse"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Username string       `json:"username" example:"alice"`
	UserID   string       `json:"userid" example:"665f1c2e8d3b4a0012345678"`
	Token    string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User     *models.User `json:"user"`
}
