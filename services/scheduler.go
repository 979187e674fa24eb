// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartRegenerationScheduler regenerates the catalog batches every midnight.
// The window markers make the job idempotent, so a boot-time run or a
// scheduler retry inside the same window cannot churn a current batch.
func (s *TaskCatalogService) StartRegenerationScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.CronJob("0 0 * * *", false),
		gocron.NewTask(func() {
			if err := s.GenerateAll(time.Now()); err != nil {
				log.Printf("[Scheduler] task regeneration failed: %v", err)
				return
			}
			log.Println("✅ Period task batches regenerated")
		}),
	)
}
