package activity

import (
	"fmt"

	"github.com/cecepns/wedding-demo-sub001/internal/database"
	"github.com/cecepns/wedding-demo-sub001/internal/models"
)

type LogOptions struct {
	UserID   uint
	UserName string
	Action   string // mis. "create_incoming", "recalculate_stock"
	Details  string
}

// Write menulis satu baris activity log. Append-only: tidak ada update,
// tidak ada undo. Kegagalan logging tidak boleh menggagalkan request utama,
// jadi pemanggil biasanya mengabaikan error-nya.
func Write(opts LogOptions) error {
	entry := models.ActivityLog{
		UserID:   opts.UserID,
		UserName: opts.UserName,
		Action:   opts.Action,
		Details:  opts.Details,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("activity log gagal disimpan: %w", err)
	}

	return nil
}
