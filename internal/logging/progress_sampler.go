package logging

import "strings"

// ProgressSampler suppresses per-item progress lines while preserving signal
// when the media type changes or the completed percentage crosses a bucket.
type ProgressSampler struct {
	bucketSize float64
	lastPhase  string
	lastBucket int
}

// NewProgressSampler constructs a sampler that emits when the percent crosses
// bucket boundaries (default 10%) or when the phase changes.
func NewProgressSampler(bucketSize float64) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 10
	}
	return &ProgressSampler{bucketSize: bucketSize, lastBucket: -1}
}

// ShouldLog reports whether progress for done of total items in phase should
// be logged. A phase change always logs and restarts bucket tracking.
func (s *ProgressSampler) ShouldLog(phase string, done, total int) bool {
	if s == nil {
		return true
	}
	phase = strings.TrimSpace(phase)
	emit := false
	if phase != s.lastPhase {
		s.lastPhase = phase
		s.lastBucket = -1
		emit = true
	}
	if total <= 0 {
		return emit
	}
	percent := float64(done) * 100 / float64(total)
	bucket := int(percent / s.bucketSize)
	if done >= total {
		bucket = int(100 / s.bucketSize)
	}
	if bucket > s.lastBucket {
		s.lastBucket = bucket
		emit = true
	}
	return emit
}

// Reset clears the sampler state.
func (s *ProgressSampler) Reset() {
	if s == nil {
		return
	}
	s.lastPhase = ""
	s.lastBucket = -1
}
