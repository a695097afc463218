package reconcile

import (
	"time"

	"github.com/dweagle/extras/internal/media"
)

// TypeSummary counts outcomes for one media type.
type TypeSummary struct {
	Type      media.Type `json:"type"`
	Total     int        `json:"total"`
	Local     int        `json:"matched_local"`
	Remote    int        `json:"matched_remote"`
	Unmatched int        `json:"unmatched"`
}

// Summary describes a finished run.
type Summary struct {
	RunID      string        `json:"run_id"`
	Started    time.Time     `json:"started"`
	Duration   time.Duration `json:"duration_ns"`
	OutputPath string        `json:"output"`
	DryRun     bool          `json:"dry_run"`
	Types      []TypeSummary `json:"types"`
}

// Total sums every media type.
func (s *Summary) Total() TypeSummary {
	var out TypeSummary
	if s == nil {
		return out
	}
	for _, t := range s.Types {
		out.Total += t.Total
		out.Local += t.Local
		out.Remote += t.Remote
		out.Unmatched += t.Unmatched
	}
	return out
}
