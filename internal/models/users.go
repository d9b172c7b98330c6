package models

import (
	"time"

	"github.com/lib/pq"
)

const (
	// RoleUser is assigned to every account created through registration.
	RoleUser = "user"

	// RoleAdmin can create and delete other users.
	RoleAdmin = "admin"
)

type User struct {
	ID             int64          `db:"id" json:"id"`
	Name           string         `db:"name" json:"name"`
	Email          string         `db:"email" json:"email"`
	HashedPassword string         `db:"hashed_password" json:"-"`
	Roles          pq.StringArray `db:"roles" json:"roles"`
	CreatedAt      time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updatedAt"`
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
