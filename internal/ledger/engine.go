package ledger

import (
	"errors"

	"github.com/cecepns/wedding-demo-sub001/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrInsufficientStock: stok tidak cukup untuk barang keluar.
	ErrInsufficientStock = errors.New("stok tidak mencukupi")
	// ErrProductNotFound: kode produk tidak ada di tabel products.
	ErrProductNotFound = errors.New("produk tidak ditemukan")
)

// Engine adalah satu-satunya penulis kolom current_stock.
//
// Invariant yang dijaga untuk setiap produk:
//
//	current_stock == initial_stock + SUM(incoming.quantity) - SUM(outgoing.quantity)
//
// Versi lama memakai trigger INSERT di database plus kompensasi manual di
// PUT/DELETE; dua implementasi itu bisa saling geser. Di sini semua jalur
// (create/update/delete, masuk maupun keluar) lewat fungsi delta yang sama,
// dan setiap mutasi ledger (baris entry + delta stok) jalan dalam satu
// transaksi: gagal salah satu berarti tidak ada efek sama sekali.
type Engine struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// addStock menambah (delta bisa negatif) current_stock satu produk dalam
// satu statement UPDATE.
func addStock(tx *gorm.DB, code string, delta int) error {
	res := tx.Model(&models.Product{}).
		Where("code = ?", code).
		UpdateColumn("current_stock", gorm.Expr("current_stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// takeStock mengurangi current_stock dengan syarat kecukupan di dalam
// statement yang sama (WHERE current_stock >= qty). Dua request keluar yang
// balapan tidak mungkin sama-sama lolos membuat stok negatif: salah satu
// pasti kena 0 rows affected.
func takeStock(tx *gorm.DB, code string, qty int) error {
	res := tx.Model(&models.Product{}).
		Where("code = ? AND current_stock >= ?", code, qty).
		UpdateColumn("current_stock", gorm.Expr("current_stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Bedakan produk tidak ada vs stok kurang
		var count int64
		if err := tx.Model(&models.Product{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrProductNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}

// ApplyIncomingCreate menyimpan entry barang masuk dan menambah stok,
// keduanya dalam satu transaksi.
func (e *Engine) ApplyIncomingCreate(entry *models.IncomingGood) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		if err := addStock(tx, entry.ProductCode, entry.Quantity); err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

// ApplyIncomingUpdate mengganti entry barang masuk dengan kompensasi:
// efek lama dicabut, efek baru diterapkan. Kalau kode produknya sama,
// keduanya digabung jadi SATU delta (new - old) dalam satu statement,
// bukan dua update terpisah yang bisa diselingi request lain.
func (e *Engine) ApplyIncomingUpdate(id uint, updated *models.IncomingGood) (*models.IncomingGood, error) {
	var entry models.IncomingGood
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry, id).Error; err != nil {
			return err
		}

		if entry.ProductCode == updated.ProductCode {
			if net := updated.Quantity - entry.Quantity; net != 0 {
				if err := addStock(tx, entry.ProductCode, net); err != nil {
					return err
				}
			}
		} else {
			if err := addStock(tx, entry.ProductCode, -entry.Quantity); err != nil {
				return err
			}
			if err := addStock(tx, updated.ProductCode, updated.Quantity); err != nil {
				return err
			}
		}

		entry.ProductCode = updated.ProductCode
		entry.ProductName = updated.ProductName
		entry.Category = updated.Category
		entry.Brand = updated.Brand
		entry.Quantity = updated.Quantity
		entry.Date = updated.Date
		entry.ResiNumber = updated.ResiNumber
		entry.Platform = updated.Platform
		return tx.Save(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ApplyIncomingDelete menghapus entry barang masuk dan mencabut efeknya.
func (e *Engine) ApplyIncomingDelete(id uint) (*models.IncomingGood, error) {
	var entry models.IncomingGood
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry, id).Error; err != nil {
			return err
		}
		if err := addStock(tx, entry.ProductCode, -entry.Quantity); err != nil {
			return err
		}
		return tx.Delete(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ApplyOutgoingCreate menyimpan entry barang keluar dan mengurangi stok.
// Precondition current_stock >= quantity ditegakkan atomik oleh takeStock.
func (e *Engine) ApplyOutgoingCreate(entry *models.OutgoingGood) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		if err := takeStock(tx, entry.ProductCode, entry.Quantity); err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

// ApplyOutgoingUpdate: kompensasi dengan precondition gabungan. Stok yang
// tersedia = current_stock + quantity lama (quantity lama "dikembalikan"
// dulu secara nosional sebelum dicek ulang terhadap quantity baru).
func (e *Engine) ApplyOutgoingUpdate(id uint, updated *models.OutgoingGood) (*models.OutgoingGood, error) {
	var entry models.OutgoingGood
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry, id).Error; err != nil {
			return err
		}

		if entry.ProductCode == updated.ProductCode {
			// available = current + old, syarat available >= new
			// ekuivalen dengan current >= new - old, jadi cukup satu
			// takeStock sebesar selisihnya kalau quantity naik.
			switch net := updated.Quantity - entry.Quantity; {
			case net > 0:
				if err := takeStock(tx, entry.ProductCode, net); err != nil {
					return err
				}
			case net < 0:
				if err := addStock(tx, entry.ProductCode, -net); err != nil {
					return err
				}
			}
		} else {
			if err := addStock(tx, entry.ProductCode, entry.Quantity); err != nil {
				return err
			}
			if err := takeStock(tx, updated.ProductCode, updated.Quantity); err != nil {
				return err
			}
		}

		entry.ProductCode = updated.ProductCode
		entry.ProductName = updated.ProductName
		entry.Category = updated.Category
		entry.Brand = updated.Brand
		entry.Quantity = updated.Quantity
		entry.Date = updated.Date
		entry.ResiNumber = updated.ResiNumber
		entry.Platform = updated.Platform
		entry.PurchasePrice = updated.PurchasePrice
		entry.SellingPrice = updated.SellingPrice
		entry.Discount = updated.Discount
		return tx.Save(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ApplyOutgoingDelete menghapus entry barang keluar dan mengembalikan
// stoknya. Tidak pernah ditolak karena kecukupan: stok hanya bertambah.
func (e *Engine) ApplyOutgoingDelete(id uint) (*models.OutgoingGood, error) {
	var entry models.OutgoingGood
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry, id).Error; err != nil {
			return err
		}
		if err := addStock(tx, entry.ProductCode, entry.Quantity); err != nil {
			return err
		}
		return tx.Delete(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// RecomputeAll menghitung ulang current_stock semua produk dari riwayat
// ledger dalam SATU statement UPDATE, jadi pembaca lain tidak pernah
// melihat snapshot setengah jadi. Idempotent: dijalankan dua kali hasilnya
// sama. Dipakai untuk memperbaiki drift, bukan dipanggil otomatis.
func (e *Engine) RecomputeAll() (int64, error) {
	res := e.db.Exec(`
		UPDATE products SET current_stock = initial_stock
			+ COALESCE((SELECT SUM(quantity) FROM incoming_goods WHERE incoming_goods.product_code = products.code), 0)
			- COALESCE((SELECT SUM(quantity) FROM outgoing_goods WHERE outgoing_goods.product_code = products.code), 0)
	`)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

type ConsistencyReport struct {
	TotalStock      int  `json:"total_stock"`
	CalculatedStock int  `json:"calculated_stock"`
	IsConsistent    bool `json:"is_consistent"`
	Difference      int  `json:"difference"`
}

// CheckConsistency membandingkan total current_stock tersimpan dengan total
// hasil hitung dari riwayat. Selalu all-time, tidak ikut filter periode
// dashboard. Ini cek agregat global: drift per produk yang saling menutup
// tidak kelihatan di sini, pakai CheckProducts untuk rinciannya.
func (e *Engine) CheckConsistency() (*ConsistencyReport, error) {
	var totals struct {
		Stock   int
		Initial int
	}
	if err := e.db.Raw(`
		SELECT COALESCE(SUM(current_stock), 0) AS stock,
		       COALESCE(SUM(initial_stock), 0) AS initial
		FROM products
	`).Scan(&totals).Error; err != nil {
		return nil, err
	}

	var totalIncoming, totalOutgoing int
	if err := e.db.Raw(`SELECT COALESCE(SUM(quantity), 0) FROM incoming_goods`).Scan(&totalIncoming).Error; err != nil {
		return nil, err
	}
	if err := e.db.Raw(`SELECT COALESCE(SUM(quantity), 0) FROM outgoing_goods`).Scan(&totalOutgoing).Error; err != nil {
		return nil, err
	}

	calculated := totals.Initial + totalIncoming - totalOutgoing
	return &ConsistencyReport{
		TotalStock:      totals.Stock,
		CalculatedStock: calculated,
		IsConsistent:    totals.Stock == calculated,
		Difference:      totals.Stock - calculated,
	}, nil
}

type ProductDrift struct {
	ProductCode     string `json:"product_code"`
	ProductName     string `json:"product_name"`
	CurrentStock    int    `json:"current_stock"`
	CalculatedStock int    `json:"calculated_stock"`
	Difference      int    `json:"difference"`
}

// CheckProducts mengembalikan daftar produk yang current_stock-nya tidak
// cocok dengan riwayat ledger. Baris ledger yatim (produknya sudah dihapus)
// tidak ikut di sini.
func (e *Engine) CheckProducts() ([]ProductDrift, error) {
	var rows []ProductDrift
	err := e.db.Raw(`
		SELECT p.code AS product_code,
		       p.name AS product_name,
		       p.current_stock AS current_stock,
		       p.initial_stock + COALESCE(i.total, 0) - COALESCE(o.total, 0) AS calculated_stock
		FROM products p
		LEFT JOIN (SELECT product_code, SUM(quantity) AS total FROM incoming_goods GROUP BY product_code) i
			ON i.product_code = p.code
		LEFT JOIN (SELECT product_code, SUM(quantity) AS total FROM outgoing_goods GROUP BY product_code) o
			ON o.product_code = p.code
		ORDER BY p.code
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	drifted := make([]ProductDrift, 0)
	for _, r := range rows {
		if r.CurrentStock != r.CalculatedStock {
			r.Difference = r.CurrentStock - r.CalculatedStock
			drifted = append(drifted, r)
		}
	}
	return drifted, nil
}
