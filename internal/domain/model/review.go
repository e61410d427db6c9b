package model

import "time"

// レビューは追記のみ（編集・削除なし）
type Review struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID  int64     `gorm:"not null;index" json:"product_id"`
	CustomerID int64     `gorm:"not null;index" json:"customer_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
