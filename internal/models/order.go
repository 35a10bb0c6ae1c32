package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusArrived   OrderStatus = "arrived"
	OrderStatusConverted OrderStatus = "converted"
)

// Purchase order. Tidak menyentuh stok sampai dikonversi jadi Product.
type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Code       string      `gorm:"size:50;index" json:"code"`
	Name       string      `gorm:"size:150;not null" json:"name"`
	Category   string      `gorm:"size:100" json:"category"`
	Brand      string      `gorm:"size:100" json:"brand"`
	BarcodeID  string      `gorm:"size:100" json:"barcode_id"`
	Quantity   int         `gorm:"not null" json:"quantity"`
	OrderDate  time.Time   `json:"order_date"`
	Platform   string      `gorm:"size:50" json:"platform"`
	ResiNumber string      `gorm:"size:100" json:"resi_number"`
	Status     OrderStatus `gorm:"size:20;not null;default:pending" json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
