package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Daily fires a job once per day at a configured local wall-clock hour.
// Rescheduling discards the pending occurrence before installing the new
// one, so a changed delivery time never produces duplicate firings.
type Daily struct {
	mu   sync.Mutex
	hour int

	loc   *time.Location
	job   func(context.Context)
	now   func() time.Time
	reset chan struct{}
}

func NewDaily(hour int, loc *time.Location, job func(context.Context)) *Daily {
	return &Daily{
		hour:  hour,
		loc:   loc,
		job:   job,
		now:   time.Now,
		reset: make(chan struct{}, 1),
	}
}

// NextRun returns the next occurrence of hour o'clock in loc, strictly
// after now.
func NextRun(now time.Time, hour int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Hour returns the currently configured delivery hour.
func (d *Daily) Hour() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hour
}

// Reschedule changes the delivery hour. If the hour actually changed, the
// pending occurrence is cleared and the next firing is computed from the
// new hour.
func (d *Daily) Reschedule(hour int) {
	d.mu.Lock()
	changed := d.hour != hour
	d.hour = hour
	d.mu.Unlock()

	if !changed {
		return
	}
	select {
	case d.reset <- struct{}{}:
	default:
	}
	log.Info().Int("hour", hour).Msg("daily report rescheduled")
}

// Start runs the firing loop until ctx is done. Renders happen inside the
// loop goroutine, so at most one scheduled run is in flight at a time.
func (d *Daily) Start(ctx context.Context) error {
	for {
		next := NextRun(d.now(), d.Hour(), d.loc)
		timer := time.NewTimer(next.Sub(d.now()))
		log.Info().Time("next_run", next).Msg("daily report scheduled")

		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-d.reset:
			timer.Stop()
		case <-timer.C:
			d.job(ctx)
		}
	}
}
