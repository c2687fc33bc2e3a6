package user

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Profile is the public view of a user plus their activity counts, computed
// on read. It carries no email; only the owner sees that, via /auth/me.
type Profile struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Role          string    `json:"role"`
	QuestionCount int       `json:"question_count"`
	AnswerCount   int       `json:"answer_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 30).Error("username must be between 3 and 30 characters"),
			is.Alphanumeric.Error("username must be alphanumeric"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("email is invalid"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 72).Error("password must be between 8 and 72 characters"),
		),
	)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("email is required")),
		validation.Field(&r.Password, validation.Required.Error("password is required")),
	)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required.Error("refresh_token is required")),
	)
}

// AuthResponse carries the token pair issued on register, login, and refresh.
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
