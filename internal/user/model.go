package user

import "time"

const (
	RoleOwner  = "owner"
	RoleWorker = "worker"
	RoleClient = "client"
)

type User struct {
	ID            int       `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Email         string    `db:"email" json:"email"`
	PasswordHash  string    `db:"password_hash" json:"-"`
	Role          string    `db:"role" json:"role"`
	CovidPassport bool      `db:"covid_passport" json:"covid_passport"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type RegisterRequest struct {
	Name          string `json:"name" binding:"required,min=2,max=100"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	CovidPassport bool   `json:"covid_passport"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}
