package analysis

import (
	"stock-spike-analyzer/internal/analysis/analysisobs"
	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/store"
)

// New builds the analysis service wrapped with observability
func New(cfg *store.Config, d Deps) interfaces.Analyzer {
	return analysisobs.Wrap(newService(cfg, d))
}
