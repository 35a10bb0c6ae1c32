package models

import "time"

// Barang keluar: mengurangi stok, plus harga untuk pembukuan margin.
type OutgoingGood struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProductCode   string    `gorm:"size:50;index;not null" json:"product_code"`
	ProductName   string    `gorm:"size:150" json:"product_name"`
	Category      string    `gorm:"size:100" json:"category"`
	Brand         string    `gorm:"size:100" json:"brand"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	Date          time.Time `gorm:"index" json:"date"`
	ResiNumber    string    `gorm:"size:100" json:"resi_number"`
	Platform      string    `gorm:"size:50" json:"platform"`
	PurchasePrice float64   `gorm:"not null;default:0" json:"purchase_price"`
	SellingPrice  float64   `gorm:"not null;default:0" json:"selling_price"`
	Discount      float64   `gorm:"not null;default:0" json:"discount"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
