package progress

import (
	"sync"
	"time"
)

// stalenessWindow is the maximum gap between updates that is still considered
// comparable. Beyond it the smoother jumps to the new value instead of
// interpolating across a stall.
const stalenessWindow = time.Second

// Smoother applies exponential smoothing to a progress stream:
// smoothed = prev + alpha*(new - prev). Safe for concurrent use; batch
// workers feed one shared instance.
type Smoother struct {
	mu         sync.Mutex
	alpha      float64
	value      float64
	lastUpdate time.Time
	seeded     bool
	now        func() time.Time
}

// NewSmoother creates a Smoother with the given smoothing factor, clamped to
// [0,1]. Alpha 1 passes values through unchanged.
func NewSmoother(alpha float64) *Smoother {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return &Smoother{alpha: alpha, now: time.Now}
}

// Update feeds a raw progress value and returns the smoothed one. The first
// value and any value arriving after the staleness window seed the smoother
// directly.
func (s *Smoother) Update(raw float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if !s.seeded || now.Sub(s.lastUpdate) > stalenessWindow {
		s.value = raw
		s.seeded = true
	} else {
		s.value += s.alpha * (raw - s.value)
	}
	s.lastUpdate = now
	return s.value
}

// Reset discards history; the next Update seeds the smoother.
func (s *Smoother) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seeded = false
	s.value = 0
}

// Value returns the current smoothed value.
func (s *Smoother) Value() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}
