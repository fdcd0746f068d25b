package model

import "time"

type UserRole string

const (
	RoleUser    UserRole = "user"
	RoleSupport UserRole = "support"
	RoleAdmin   UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleSupport, RoleAdmin:
		return true
	}
	return false
}

// User is an account that can sign in and own blogs. Role is stored but not
// consulted for authorization.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Fullname     string    `gorm:"size:120;not null" json:"fullname"`
	Email        string    `gorm:"size:180;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password;size:255;not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(16);not null;default:user" json:"role"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Blogs []Blog `gorm:"foreignKey:CreatedBy" json:"-"`
}
