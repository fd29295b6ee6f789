// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartExpiryScheduler sweeps overdue PENDING donations to EXPIRED on a
// fixed interval. The sweep only ever touches PENDING rows, so it is safe to
// run alongside ordinary status updates.
func (s *DonationService) StartExpiryScheduler(interval time.Duration) {
	if interval <= 0 {
		interval = 1 * time.Minute
	}

	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			expired, err := s.MarkExpiredDonations(time.Now())
			if err != nil {
				log.Printf("[Scheduler] expiry sweep failed: %v", err)
				return
			}
			if expired > 0 {
				log.Printf("[Scheduler] marked %d donation(s) EXPIRED", expired)
			}
		}),
	)
}
