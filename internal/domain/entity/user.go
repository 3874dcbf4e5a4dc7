package entity

import (
	"strings"
	"time"
)

// User is the persisted account record. PasswordHash never crosses the
// service boundary; handlers only ever see the response DTO.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Active       bool
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// NewUser builds an unsaved active user. The password hash is set by the
// service after hashing; UpdatedAt stays nil until the first mutation.
func NewUser(name, email string) *User {
	return &User{
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
}

// NormalizeEmail lowercases and trims an email so storage and comparison
// always see the same form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ApplyUpdate overwrites name and email from a partial update. Absent or
// blank-after-trim fields are left untouched. PasswordHash, Active and
// CreatedAt are never modified here.
func (u *User) ApplyUpdate(name, email *string) {
	if name != nil {
		if trimmed := strings.TrimSpace(*name); trimmed != "" {
			u.Name = trimmed
		}
	}
	if email != nil {
		if normalized := NormalizeEmail(*email); normalized != "" {
			u.Email = normalized
		}
	}
}

// Touch stamps UpdatedAt. Called at every state transition.
func (u *User) Touch() {
	now := time.Now().UTC()
	u.UpdatedAt = &now
}

func (u *User) Deactivate() {
	u.Active = false
	u.Touch()
}

func (u *User) Reactivate() {
	u.Active = true
	u.Touch()
}
