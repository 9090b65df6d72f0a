package view

import (
	"context"
	"time"
)

// Drive ticks run id until it completes, the context is canceled, or a
// surface error occurs. A zero interval ticks as fast as possible. On
// cancellation the run is stopped before returning.
func Drive(ctx context.Context, s *Session, id RunID, interval time.Duration) error {
	var tick <-chan time.Time
	if interval > 0 {
		t := time.NewTicker(interval)
		defer t.Stop()
		tick = t.C
	}

	for s.Status() == Running && s.RunID() == id {
		if tick != nil {
			select {
			case <-ctx.Done():
				s.Stop()
				return ctx.Err()
			case <-tick:
			}
		} else {
			select {
			case <-ctx.Done():
				s.Stop()
				return ctx.Err()
			default:
			}
		}

		if _, err := s.Tick(id); err != nil {
			return err
		}
	}
	return nil
}
