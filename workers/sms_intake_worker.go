// workers/sms_intake_worker.go
package workers

import (
	"context"
	"log"
	"time"

	"food-share-system/models"
	"food-share-system/services"
)

// SmsIntakeWorker periodically drains pending SMS / missed-call intake rows,
// fulfilling food requests as anonymous donation requests. Rows that cannot
// be fulfilled yet (no available donation) stay pending for the next pass.
type SmsIntakeWorker struct {
	sms      *services.SmsService
	interval time.Duration
}

func NewSmsIntakeWorker(sms *services.SmsService, interval time.Duration) *SmsIntakeWorker {
	if interval <= 0 {
		interval = 1 * time.Minute
	}
	return &SmsIntakeWorker{sms: sms, interval: interval}
}

func (w *SmsIntakeWorker) Start(ctx context.Context) {
	log.Println("Starting SMS intake worker…")
	go w.run(ctx)
}

func (w *SmsIntakeWorker) run(ctx context.Context) {
	// drain whatever queued up while we were down
	w.processBatch()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[SMS_WORKER] stopped")
			return
		case <-ticker.C:
			w.processBatch()
		}
	}
}

func (w *SmsIntakeWorker) processBatch() {
	pending, err := w.sms.GetPendingIntake()
	if err != nil {
		log.Printf("[SMS_WORKER] failed to load pending intake: %v", err)
		return
	}

	for _, row := range pending {
		processed, err := w.sms.ProcessIntake(row.ID)
		if err != nil {
			log.Printf("[SMS_WORKER] failed to process %s: %v", row.ID, err)
			continue
		}
		if processed.Status == models.SmsRequestStatusProcessed {
			log.Printf("[SMS_WORKER] fulfilled intake %s (%s)", row.ID, row.RequestType)
		}
	}
}
