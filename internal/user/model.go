package user

import (
	"time"

	"github.com/jobport/jobport-client/internal/access"
)

type User struct {
	ID        string      `json:"id"`
	FullName  string      `json:"fullName"`
	UserName  string      `json:"userName,omitempty"`
	Email     string      `json:"email"`
	Role      access.Role `json:"role"`
	Contact   string      `json:"contact,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

type RegisterForm struct {
	FullName string      `json:"fullName"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     access.Role `json:"role"`
	Contact  string      `json:"contact,omitempty"`
}

type ProfileForm struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Contact  string `json:"contact,omitempty"`
}
