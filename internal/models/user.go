package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a registered account. Admins are distinguished by the role
// column; inactive accounts cannot log in.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"size:64;not null;uniqueIndex"`
	Email        string `json:"email" gorm:"size:100;not null;uniqueIndex"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`
	FirstName    string `json:"first_name" gorm:"size:50"`
	LastName     string `json:"last_name" gorm:"size:50"`
	Role         string `json:"role" gorm:"size:20;default:user"`
	// No gorm default: it would overwrite a deliberate false on insert.
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// SetPassword hashes and stores the given plaintext password.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FullName joins the name fields for display.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Username
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
