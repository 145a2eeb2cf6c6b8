package dto

import (
	"time"

	"github.com/codeOfTheFuture/mern-stack-authentication/internal/user/domain"
)

// UserOutput is the public profile shape returned to clients. The password
// hash never appears here.
type UserOutput struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CredentialsOutput is the reduced shape returned by register and login.
type CredentialsOutput struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewUserOutput(u *domain.User) *UserOutput {
	return &UserOutput{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func NewCredentialsOutput(u *domain.User) *CredentialsOutput {
	return &CredentialsOutput{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
