package model

import "time"

// お気に入り。(customer_id, product_id)で一意、トグルで作成/削除。
type Favorite struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID int64     `gorm:"not null;uniqueIndex:idx_fav_customer_product" json:"customer_id"`
	ProductID  int64     `gorm:"not null;uniqueIndex:idx_fav_customer_product" json:"product_id"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
