package models

import "time"

// Satu baris ledger pergerakan stok masuk. ProductCode referensi by value
// (tanpa foreign key), mengikuti skema lama.
type IncomingGood struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProductCode string    `gorm:"size:50;index;not null" json:"product_code"`
	ProductName string    `gorm:"size:150" json:"product_name"`
	Category    string    `gorm:"size:100" json:"category"`
	Brand       string    `gorm:"size:100" json:"brand"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Date        time.Time `gorm:"index" json:"date"`
	ResiNumber  string    `gorm:"size:100" json:"resi_number"`
	Platform    string    `gorm:"size:50" json:"platform"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
