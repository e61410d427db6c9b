package model

import "time"

// 注文明細。商品名・単価は注文時点のスナップショットで、
// 後から商品が変更・削除されても変わらない。
type OrderItem struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             int64     `gorm:"not null;index" json:"order_id"`
	ProductID           int64     `gorm:"not null;index" json:"product_id"`
	ProductNameSnapshot string    `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	UnitPriceSnapshot   int64     `gorm:"not null" json:"unit_price_snapshot"`
	Quantity            int64     `gorm:"not null" json:"quantity"`
	TotalPrice          int64     `gorm:"not null" json:"total_price"`
	SpecialRequests     string    `gorm:"type:text" json:"special_requests"`
	CreatedAt           time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
