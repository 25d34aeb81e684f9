package models

import "time"

// Roles stored on users.role.
const (
	RoleUser         = "user"
	RoleEditor       = "editor"
	RoleContentAdmin = "content_admin"
	RoleSystemAdmin  = "system_admin"
)

type User struct {
	UserID        string     `gorm:"primaryKey;column:user_id" json:"user_id"`
	Username      string     `gorm:"column:username;unique" json:"username"`
	Email         string     `gorm:"column:email;unique" json:"email"`
	Password      string     `gorm:"column:password" json:"-"`
	DisplayName   string     `gorm:"column:display_name" json:"display_name"`
	Role          string     `gorm:"column:role" json:"role"`
	AvatarURL     *string    `gorm:"column:avatar_url" json:"avatar_url,omitempty"`
	Bio           *string    `gorm:"column:bio" json:"bio,omitempty"`
	Institution   *string    `gorm:"column:institution" json:"institution,omitempty"`
	ResearchField *string    `gorm:"column:research_field" json:"research_field,omitempty"`
	Title         *string    `gorm:"column:title" json:"title,omitempty"`
	Karma         int        `gorm:"column:karma" json:"karma"`
	CreateAt      time.Time  `gorm:"column:create_at" json:"created_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user can access moderation endpoints.
func (u *User) IsAdmin() bool {
	return u.Role == RoleContentAdmin || u.Role == RoleSystemAdmin
}
