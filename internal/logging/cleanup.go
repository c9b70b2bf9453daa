package logging

import (
	"log/slog"
	"time"

	"github.com/temply-mn/temply-api/internal/models"
	"gorm.io/gorm"
)

// StartCleanup deletes system_logs older than retentionDays once at start and
// then daily until done is closed.
func StartCleanup(db *gorm.DB, retentionDays int, done chan struct{}) {
	go func() {
		purgeLogs(db, retentionDays)

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				purgeLogs(db, retentionDays)
			case <-done:
				return
			}
		}
	}()
}

func purgeLogs(db *gorm.DB, retentionDays int) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		slog.Error("log cleanup failed", "error", result.Error)
	} else if result.RowsAffected > 0 {
		slog.Info("log cleanup completed", "deleted", result.RowsAffected, "retention_days", retentionDays)
	}
}
