package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"kursusku_backend/internals/configs"
	auditService "kursusku_backend/internals/features/certificates/audits/service"
	currencyService "kursusku_backend/internals/features/finance/currency/service"
)

// Retensi default audit trail sertifikat (hari).
const defaultAuditRetentionDays = 365

// Start menjalankan job latar belakang:
//   - refresh kurs tiap jam supaya cache tidak basi saat jam sibuk
//   - bersihkan audit trail lama tiap tengah malam
func Start(db *gorm.DB) *cron.Cron {
	c := cron.New()

	audit := auditService.NewAuditRecorder(db)

	_, err := c.AddFunc("@hourly", func() {
		if currencyService.Default == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := currencyService.Default.WarmRefresh(ctx, configs.RateBaseCurrency); err != nil {
			log.Printf("[WARN] refresh kurs gagal: %v", err)
		}
	})
	if err != nil {
		log.Printf("[ERROR] gagal daftar job refresh kurs: %v", err)
	}

	retention := configs.GetEnvInt("AUDIT_RETENTION_DAYS", defaultAuditRetentionDays)
	_, err = c.AddFunc("0 0 * * *", func() {
		deleted, err := audit.PruneOlderThan(retention)
		if err != nil {
			log.Printf("[WARN] prune audit gagal: %v", err)
			return
		}
		if deleted > 0 {
			log.Printf("[INFO] prune audit: %d baris dihapus", deleted)
		}
	})
	if err != nil {
		log.Printf("[ERROR] gagal daftar job prune audit: %v", err)
	}

	c.Start()
	log.Println("[INFO] Scheduler aktif (refresh kurs @hourly, prune audit @midnight)")
	return c
}
