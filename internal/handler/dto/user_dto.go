package dto

import (
	"github.com/yourusername/contest-api/internal/domain/entity"
)

// UserResponse представляет публичный профиль пользователя (без пароля)
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Country  string `json:"country,omitempty"`
	Role     string `json:"role"`
}

// NewUserResponse строит ответ из сущности пользователя
func NewUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Country:  user.Country,
		Role:     user.Role,
	}
}

// LoginResponse представляет ответ на успешный вход
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}
