// Package progress turns raw operation counters into UI-facing percentages
// and time-remaining estimates.
package progress

import "time"

// EstimatedTimeRemaining extrapolates linearly from the elapsed time and the
// current fractional progress. It returns 0 when current <= 0, so callers
// never see division-by-zero artifacts or negative ETAs.
func EstimatedTimeRemaining(start time.Time, current, total float64) time.Duration {
	if current <= 0 || total <= 0 {
		return 0
	}
	if current >= total {
		return 0
	}
	elapsed := time.Since(start)
	remaining := float64(elapsed) * (total - current) / current
	return time.Duration(remaining)
}

// BatchProgress is the processed fraction of a batch as a percentage in
// [0,100]. Completed and failed items both count as processed; "processed"
// is distinct from "succeeded". A zero total yields 0, never NaN.
func BatchProgress(total, completed, failed int) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(completed+failed) / float64(total) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// EstimateBatchTimeRemaining multiplies the remaining item count by the
// average duration of the items completed so far. Before anything has
// completed it falls back to the caller-supplied per-item estimate.
func EstimateBatchTimeRemaining(total, completed int, elapsed, fallbackPerItem time.Duration) time.Duration {
	remaining := total - completed
	if remaining <= 0 {
		return 0
	}
	if completed <= 0 {
		return time.Duration(remaining) * fallbackPerItem
	}
	avg := elapsed / time.Duration(completed)
	return time.Duration(remaining) * avg
}
