package catalog

import "time"

// Rotator cycles through the banner carousel at a fixed interval. The active
// index is derived from elapsed time rather than a background goroutine, so
// every caller observes the same banner at the same instant.
type Rotator struct {
	banners  []Banner
	interval time.Duration
	start    time.Time
	now      func() time.Time
}

// DefaultRotateInterval is used when no positive interval is configured.
const DefaultRotateInterval = 4 * time.Second

// NewRotator creates a Rotator over banners advancing every interval.
// A non-positive interval falls back to DefaultRotateInterval.
func NewRotator(banners []Banner, interval time.Duration) *Rotator {
	if interval <= 0 {
		interval = DefaultRotateInterval
	}
	r := &Rotator{
		banners:  banners,
		interval: interval,
		now:      time.Now,
	}
	r.start = r.now()
	return r
}

// ActiveIndex returns the index of the currently displayed banner.
// It returns 0 when there are no banners.
func (r *Rotator) ActiveIndex() int {
	if len(r.banners) == 0 {
		return 0
	}
	elapsed := r.now().Sub(r.start)
	if elapsed < 0 {
		elapsed = 0
	}
	return int(elapsed/r.interval) % len(r.banners)
}

// Active returns the currently displayed banner and false if there are none.
func (r *Rotator) Active() (Banner, bool) {
	if len(r.banners) == 0 {
		return Banner{}, false
	}
	return r.banners[r.ActiveIndex()], true
}
