package model

import (
	"time"

	"github.com/lib/pq"
)

// 価格は円/セント単位のint64で持つ（浮動小数は使わない）
type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Price       int64  `gorm:"not null" json:"price"`
	Stock       int64  `gorm:"not null;default:0" json:"stock"`
	ImageURL    string `gorm:"type:varchar(500)" json:"image_url"`

	//ビーガン・グルテンフリーなどの食事タグ
	Dietary pq.StringArray `gorm:"type:text[]" json:"dietary"`
	Tags    pq.StringArray `gorm:"type:text[]" json:"tags"`

	PrepTimeMinutes int64  `json:"prep_time_minutes"`
	CategoryID      *int64 `gorm:"index" json:"category_id"`

	//商品のオーナー（vendorロールのユーザー）
	VendorID int64 `gorm:"not null;index" json:"vendor_id"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
