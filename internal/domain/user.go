package domain

import "time"

// Roles a user account can carry. The role is persisted but no route
// currently restricts access based on it.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account. Username is immutable after
// creation; the profile fields are overwritten as a whole by the
// profile service.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"`
	Role           string    `json:"role"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	FirstName      string    `json:"firstName,omitempty"`
	LastName       string    `json:"lastName,omitempty"`
	Patronymic     string    `json:"patronymic,omitempty"`
	Address        string    `json:"address,omitempty"`
	PhoneNumber    string    `json:"phoneNumber,omitempty"`
	AboutMe        string    `json:"aboutMe,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Profile holds the mutable profile fields of a user.
type Profile struct {
	FirstName   string
	LastName    string
	Patronymic  string
	Address     string
	PhoneNumber string
	AboutMe     string
}
