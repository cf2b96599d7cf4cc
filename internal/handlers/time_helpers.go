package handlers

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// parseDate reads a 2006-01-02 date in the operating timezone.
func parseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, timezone.Location())
}
