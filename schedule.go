package main

import (
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// StartPipelineScheduler runs the full pipeline on a standard 5-field cron
// expression (minute hour day-of-month month day-of-week), e.g. "0 6 * * *"
// for daily 6am. Returns false when no schedule is configured.
func StartPipelineScheduler(cfg Config, db *sql.DB) bool {
	schedule := strings.TrimSpace(cfg.Schedule)
	if schedule == "" {
		return false
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		log.Fatalf("invalid schedule '%s': %v", schedule, err)
	}
	log.Printf("Pipeline scheduled (cron: %s)", schedule)

	go func() {
		for {
			now := time.Now().In(cfg.Location)
			next := sched.Next(now)
			wait := next.Sub(now)
			log.Printf("Next pipeline run at %s (in %s)", next.Format("Mon Jan 2 15:04"), wait.Round(time.Minute))

			time.Sleep(wait)

			if err := RunFullPipeline(cfg, db); err != nil {
				log.Printf("Scheduled run failed: %v", err)
			}
		}
	}()
	return true
}
