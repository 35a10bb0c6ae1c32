package database

import (
	"log"

	"github.com/cecepns/wedding-demo-sub001/internal/config"
	"github.com/cecepns/wedding-demo-sub001/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Tidak bisa konek ke database: %v", err)
	}

	// Skema lama memakai trigger INSERT pada incoming/outgoing untuk update
	// current_stock. Semua delta sekarang lewat ledger engine, jadi trigger
	// sisa instalasi lama harus dibuang supaya tidak dobel hitung.
	if DB.Migrator().HasTable(&models.IncomingGood{}) {
		if err := DB.Exec("DROP TRIGGER IF EXISTS trg_incoming_goods_insert ON incoming_goods").Error; err != nil {
			log.Printf("Gagal drop trigger lama incoming_goods (lanjut): %v", err)
		}
	}
	if DB.Migrator().HasTable(&models.OutgoingGood{}) {
		if err := DB.Exec("DROP TRIGGER IF EXISTS trg_outgoing_goods_insert ON outgoing_goods").Error; err != nil {
			log.Printf("Gagal drop trigger lama outgoing_goods (lanjut): %v", err)
		}
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.ActivityLog{},
		// inventaris
		&models.Product{},
		&models.IncomingGood{},
		&models.OutgoingGood{},
		&models.Order{},
		// wedding
		&models.WeddingService{},
		&models.ServiceItem{},
		&models.Article{},
		&models.GalleryImage{},
		&models.CustomRequest{},
		&models.Payment{},
		&models.ContactMessage{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate gagal: %v", err)
	}

	log.Println("Koneksi database berhasil. Migration selesai.")
}
