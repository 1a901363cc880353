package interfaces

import (
	"time"

	"stock-spike-analyzer/internal/types"
)

// EodSummarizer writes the after-close movers digest
type EodSummarizer interface {
	SummarizeDay(t time.Time, report *types.MoversReport) (csvPath string, err error)
	ShouldRunNow() (shouldRun bool, csvPath string)
}
