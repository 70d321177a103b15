package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"gorm.io/gorm"
)

const retention = 30 * 24 * time.Hour

// PurgeOlderThan deletes system_logs recorded before cutoff.
func PurgeOlderThan(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}

// StartCleanup runs a daily goroutine that deletes system_logs older than 30 days.
func StartCleanup(db *gorm.DB, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deleted, err := PurgeOlderThan(db, time.Now().Add(-retention))
				if err != nil {
					slog.Error("log cleanup failed", "error", err)
				} else if deleted > 0 {
					slog.Info("log cleanup completed", "deleted", deleted)
				}
			case <-done:
				return
			}
		}
	}()
}
