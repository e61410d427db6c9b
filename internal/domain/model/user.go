package model

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleVendor
}

type User struct {
	ID              int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName       string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName        string `gorm:"type:varchar(100)" json:"last_name"`
	Email           string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string `gorm:"column:password_hash;not null" json:"-"`
	Role            Role   `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	ProfileImageURL string `gorm:"type:varchar(500)" json:"profile_image_url"`

	//ロール変更・アカウント削除で古いトークンを無効化する
	TokenVersion int `gorm:"not null;default:0" json:"-"`

	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
