package analyzer

import (
	"time"

	"github.com/google/uuid"
)

// Stats tracks what a batch run processed.
type Stats struct {
	RunID            string
	FilesDiscovered  int
	FilesAnalyzed    int
	FilesFailed      int
	SymbolsExtracted int
	SymbolsRetained  int
	CacheHits        int
	Duration         time.Duration
}

// NewStats creates an empty Stats with a fresh run identifier.
func NewStats() *Stats {
	return &Stats{
		RunID: uuid.New().String(),
	}
}
