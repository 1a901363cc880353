package eod

import (
	"os"
	"path/filepath"
	"time"
)

var ist = time.FixedZone("IST", 19800)

func logDir() string {
	if v := os.Getenv("ANALYZER_LOG_DIR"); v != "" {
		return v
	}
	return "logs"
}

func eodCSVPath(t time.Time) string {
	return filepath.Join(logDir(), "eod", t.In(ist).Format("2006-01-02")+".csv")
}

// marketCloseTime is the digest cutoff, a few minutes after the 15:30 close
func marketCloseTime(t time.Time) time.Time {
	t = t.In(ist)
	return time.Date(t.Year(), t.Month(), t.Day(), 15, 40, 0, 0, ist)
}
