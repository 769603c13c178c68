package domain

import "time"

// OrderLog is an append-only record of an order message handed to WhatsApp.
type OrderLog struct {
	ID           int64     `json:"id,string" gorm:"primaryKey"`
	VisitorID    string    `json:"visitor_id" gorm:"size:64;index"`
	ProductID    string    `json:"product_id" gorm:"size:128;index"`
	ProductName  string    `json:"product_name"`
	UnitPrice    float64   `json:"unit_price"`
	Quantity     int       `json:"quantity"`
	Total        string    `json:"total" gorm:"size:32"` // decimal string
	BuyerName    string    `json:"buyer_name"`
	BuyerAddress string    `json:"buyer_address" gorm:"size:1024"`
	Message      string    `json:"message" gorm:"type:text"`
	Link         string    `json:"link" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
}

func (OrderLog) TableName() string {
	return "shop_order_log"
}
