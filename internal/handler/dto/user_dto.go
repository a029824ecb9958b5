package dto

import "github.com/yourusername/thisorthat-api/internal/domain/entity"

// RankResponse — ранг пользователя в общем зачете
type RankResponse struct {
	Rank int `json:"rank"`
}

// AuthResponse — ответ на регистрацию и вход
type AuthResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// RegisterRequest — запрос регистрации
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest — запрос входа
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// WSTicketResponse — одноразовый тикет для WebSocket
type WSTicketResponse struct {
	Ticket string `json:"ticket"`
}
